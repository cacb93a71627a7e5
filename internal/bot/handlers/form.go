package handlers

import (
	"context"
	"fmt"

	"talentgraph-bot/internal/api/talentgraph"
	"talentgraph-bot/internal/bot/utils"
	"talentgraph-bot/internal/models"
	"talentgraph-bot/internal/preference"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	tele "gopkg.in/telebot.v3"
)

const draftExpired = "⌛ This draft has expired. Open /preferences to start again."

// formSession is the open draft of one user.
type formSession struct {
	ctx    *Context
	userID int64
	form   *preference.Form
}

func (s *formSession) save() error {
	return s.ctx.Cache.SaveForm(context.Background(), s.userID, s.form, s.ctx.Config.FormTTL)
}

func loadForm(ctx *Context, userID int64) (*preference.Form, error) {
	return ctx.Cache.LoadForm(context.Background(), userID)
}

// withForm runs fn on the user's open draft.
func withForm(ctx *Context, c tele.Context, fn func(s *formSession) error) error {
	userID := c.Sender().ID

	form, err := loadForm(ctx, userID)
	if err != nil {
		ctx.Logger.Error("failed to load form draft", zap.Int64("user_id", userID), zap.Error(err))
		return notify(c, "😔 Something went wrong. Please try again.")
	}
	if !form.Open {
		if err := clearUserState(ctx, userID); err != nil {
			ctx.Logger.Warn("failed to clear state", zap.Error(err))
		}
		return notify(c, draftExpired)
	}

	return fn(&formSession{ctx: ctx, userID: userID, form: form})
}

// editForm applies change to the draft, stores it and re-renders with render.
func editForm(ctx *Context, c tele.Context, change func(f *preference.Form) bool, render func(f *preference.Form) error) error {
	return withForm(ctx, c, func(s *formSession) error {
		if change(s.form) {
			if err := s.save(); err != nil {
				ctx.Logger.Error("failed to save form draft", zap.Int64("user_id", s.userID), zap.Error(err))
				return notify(c, "😔 Could not save your change")
			}
		}
		return render(s.form)
	})
}

func showForm(ctx *Context, c tele.Context, f *preference.Form) error {
	return show(ctx, c, formText(f), formKeyboard(f))
}

// ==================== Fields ====================

func showFields(ctx *Context, c tele.Context, f *preference.Form, page int) error {
	return show(ctx, c, "*✏️ Fields*\n\nTap a field to change it\\. ✅ marks fields with a value\\.", fieldsKeyboard(f, page))
}

func fieldPage(key string) int {
	for i, fd := range preference.Fields() {
		if fd.Key == key {
			return i / fieldsPerPage
		}
	}
	return 0
}

func startFieldInput(ctx *Context, c tele.Context, key string) error {
	fd, ok := preference.LookupField(key)
	if !ok {
		return notify(c, "❌ Unknown field")
	}

	return withForm(ctx, c, func(s *formSession) error {
		if err := setUserState(ctx, s.userID, StateFieldValue, key); err != nil {
			ctx.Logger.Error("failed to set user state", zap.Error(err))
		}

		current := s.form.FieldValue(key)
		if current == "" {
			current = "not set"
		}

		prompt := fmt.Sprintf("✏️ *%s*\nCurrent: %s\n\nSend the new value\\.",
			utils.EscapeMarkdown(fd.Label), utils.EscapeMarkdown(utils.TruncateString(current, 200)))
		if fd.Kind == preference.FieldChoice {
			prompt = fmt.Sprintf("✏️ *%s*\nCurrent: %s\n\nPick one of the options\\.",
				utils.EscapeMarkdown(fd.Label), utils.EscapeMarkdown(current))
		}

		return c.Send(prompt, utils.FieldInputKeyboard(fd.Options), tele.ModeMarkdownV2)
	})
}

func handleFieldInput(ctx *Context, c tele.Context, key string) error {
	value := c.Text()
	if value == utils.BtnClear {
		value = "-"
	} else {
		value = utils.CleanInput(value)
	}

	return withForm(ctx, c, func(s *formSession) error {
		if err := s.form.SetField(key, value); err != nil {
			ctx.Logger.Debug("field rejected", zap.String("field", key), zap.Error(err))
			return c.Send("⚠️ " + err.Error())
		}

		if err := s.save(); err != nil {
			ctx.Logger.Error("failed to save form draft", zap.Int64("user_id", s.userID), zap.Error(err))
			return c.Send("😔 Could not save your change")
		}
		if err := clearUserState(ctx, s.userID); err != nil {
			ctx.Logger.Warn("failed to clear state", zap.Error(err))
		}

		fd, _ := preference.LookupField(key)
		if err := c.Send("✅ "+fd.Label+" updated", utils.MainMenuKeyboard()); err != nil {
			return err
		}
		return showFields(ctx, c, s.form, fieldPage(key))
	})
}

// ==================== Tags ====================

func parseTagField(s string) (preference.TagField, bool) {
	for _, f := range preference.TagFields() {
		if string(f) == s {
			return f, true
		}
	}
	return "", false
}

func showTags(ctx *Context, c tele.Context, raw string) error {
	field, ok := parseTagField(raw)
	if !ok {
		return notify(c, "❌ Unknown list")
	}

	return withForm(ctx, c, func(s *formSession) error {
		return show(ctx, c, tagsText(s.form, field), tagsKeyboard(s.form, field))
	})
}

func startTagInput(ctx *Context, c tele.Context, raw string) error {
	field, ok := parseTagField(raw)
	if !ok {
		return notify(c, "❌ Unknown list")
	}

	return withForm(ctx, c, func(s *formSession) error {
		if err := setUserState(ctx, s.userID, StateTagValue, string(field)); err != nil {
			ctx.Logger.Error("failed to set user state", zap.Error(err))
		}
		return c.Send(fmt.Sprintf("🏷 Send a value to add to %s:", tagLabel(field)), utils.CancelKeyboard())
	})
}

func handleTagInput(ctx *Context, c tele.Context, raw string) error {
	field, ok := parseTagField(raw)
	if !ok {
		return cancelConversation(ctx, c)
	}
	value := utils.CleanInput(c.Text())

	return withForm(ctx, c, func(s *formSession) error {
		if !s.form.AddTag(field, value, preference.TagLimit(field)) {
			return c.Send(fmt.Sprintf("⚠️ Not added. The value is empty, already in the list, or the list is full (max %d).", preference.TagLimit(field)))
		}

		if err := s.save(); err != nil {
			ctx.Logger.Error("failed to save form draft", zap.Int64("user_id", s.userID), zap.Error(err))
			return c.Send("😔 Could not save your change")
		}
		if err := clearUserState(ctx, s.userID); err != nil {
			ctx.Logger.Warn("failed to clear state", zap.Error(err))
		}

		if err := c.Send("✅ Added", utils.MainMenuKeyboard()); err != nil {
			return err
		}
		return show(ctx, c, tagsText(s.form, field), tagsKeyboard(s.form, field))
	})
}

func handleTagRemove(ctx *Context, c tele.Context, args []string) error {
	if len(args) < 2 {
		return notify(c, "❌ Invalid request")
	}
	field, ok := parseTagField(args[0])
	if !ok {
		return notify(c, "❌ Unknown list")
	}

	return withID(c, args, 1, func(i int64) error {
		return editForm(ctx, c,
			func(f *preference.Form) bool { return f.RemoveTag(field, int(i)) },
			func(f *preference.Form) error { return show(ctx, c, tagsText(f, field), tagsKeyboard(f, field)) },
		)
	})
}

// ==================== Locations ====================

func startLocationInput(ctx *Context, c tele.Context) error {
	return withForm(ctx, c, func(s *formSession) error {
		if err := setUserState(ctx, s.userID, StateLocation, ""); err != nil {
			ctx.Logger.Error("failed to set user state", zap.Error(err))
		}
		return c.Send("📍 Send a location as City, State or City, State, Country:", utils.CancelKeyboard())
	})
}

func handleLocationInput(ctx *Context, c tele.Context) error {
	loc, ok := parseLocation(utils.CleanInput(c.Text()))
	if !ok {
		return c.Send("⚠️ Use the format City, State or City, State, Country")
	}

	return withForm(ctx, c, func(s *formSession) error {
		if !s.form.AddLocation(loc) {
			return c.Send(fmt.Sprintf("⚠️ Not added. At most %d locations are allowed.", models.MaxLocations))
		}

		if err := s.save(); err != nil {
			ctx.Logger.Error("failed to save form draft", zap.Int64("user_id", s.userID), zap.Error(err))
			return c.Send("😔 Could not save your change")
		}
		if err := clearUserState(ctx, s.userID); err != nil {
			ctx.Logger.Warn("failed to clear state", zap.Error(err))
		}

		if err := c.Send("✅ Added "+loc.String(), utils.MainMenuKeyboard()); err != nil {
			return err
		}
		return show(ctx, c, locationsText(s.form), locationsKeyboard(s.form))
	})
}

func handleLocationRemove(ctx *Context, c tele.Context, args []string) error {
	return withID(c, args, 0, func(i int64) error {
		return editForm(ctx, c,
			func(f *preference.Form) bool { return f.RemoveLocation(int(i)) },
			func(f *preference.Form) error { return show(ctx, c, locationsText(f), locationsKeyboard(f)) },
		)
	})
}

// ==================== Preview ====================

func showPreview(ctx *Context, c tele.Context) error {
	return withForm(ctx, c, func(s *formSession) error {
		apiCtx, cancel := apiContext(c)
		defer cancel()

		var (
			resumes []models.Resume
			certs   []models.Certification
		)

		g, gctx := errgroup.WithContext(apiCtx)
		g.Go(func() error {
			var err error
			resumes, err = ctx.API.ListResumes(gctx)
			return err
		})
		g.Go(func() error {
			var err error
			certs, err = ctx.API.ListCertifications(gctx)
			return err
		})
		if err := g.Wait(); err != nil {
			return ctx.apiFailure(c, "load preview", err)
		}

		text := utils.FormatPreview(utils.PreviewInput{
			State:             s.form.State,
			TechSkills:        s.form.SkillsOf(models.SkillTechnical),
			SoftSkills:        s.form.SkillsOf(models.SkillSoft),
			Resumes:           resumes,
			Certifications:    certs,
			SelectedCertIDs:   s.form.State.CertificationIDs,
			PrimaryResumeID:   s.form.State.PrimaryResumeID,
			AttachedResumeIDs: s.form.State.AttachedResumeIDs,
		})

		return show(ctx, c, text, backToFormKeyboard())
	})
}

// ==================== Save ====================

func handleSave(ctx *Context, c tele.Context, asNew bool) error {
	return withForm(ctx, c, func(s *formSession) error {
		apiCtx, cancel := apiContext(c)
		defer cancel()

		ctrl := ctx.controller()
		ctrl.OnSaved(func(_ context.Context, saved *models.JobProfile) {
			ctx.Logger.Info("job preference saved",
				zap.Int64("user_id", s.userID),
				zap.Int64("profile_id", saved.ID),
				zap.Bool("as_new", asNew),
			)

			if err := ctx.Cache.DropForm(context.Background(), s.userID); err != nil {
				ctx.Logger.Warn("failed to drop form draft", zap.Int64("user_id", s.userID), zap.Error(err))
			}
			_ = notify(c, "✅ Saved")

			if err := showList(ctx, c); err != nil {
				ctx.Logger.Warn("failed to show list after save", zap.Error(err))
			}
		})

		var err error
		if asNew {
			_, err = ctrl.SaveAsNew(apiCtx, s.form)
		} else {
			_, err = ctrl.Submit(apiCtx, s.form)
		}

		if err != nil {
			if talentgraph.IsUnauthorized(err) {
				return ctx.apiFailure(c, "save preference", err)
			}
			return notify(c, "⚠️ "+preference.ErrorMessage(err))
		}
		return nil
	})
}

func handleFormClose(ctx *Context, c tele.Context) error {
	userID := c.Sender().ID

	if err := ctx.Cache.DropForm(context.Background(), userID); err != nil {
		ctx.Logger.Warn("failed to drop form draft", zap.Int64("user_id", userID), zap.Error(err))
	}
	if err := clearUserState(ctx, userID); err != nil {
		ctx.Logger.Warn("failed to clear state", zap.Error(err))
	}

	return showList(ctx, c)
}
