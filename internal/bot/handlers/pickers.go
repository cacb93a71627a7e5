package handlers

import (
	"context"
	"errors"
	"strconv"
	"strings"

	"talentgraph-bot/internal/bot/utils"
	"talentgraph-bot/internal/bot/widgets"
	"talentgraph-bot/internal/models"
	"talentgraph-bot/internal/preference"
	"talentgraph-bot/internal/storage/redis"

	"go.uber.org/zap"
	tele "gopkg.in/telebot.v3"
)

// ==================== Skills ====================

// catalogFor returns the skill catalog of the current form session, fetching
// it on first use.
func catalogFor(ctx *Context, c tele.Context, userID int64) (*models.SkillCatalog, error) {
	cacheCtx := context.Background()

	catalog, err := ctx.Cache.GetCatalog(cacheCtx, userID)
	if err == nil {
		return catalog, nil
	}
	if !errors.Is(err, redis.ErrCacheMiss) {
		ctx.Logger.Warn("failed to read cached catalog", zap.Int64("user_id", userID), zap.Error(err))
	}

	apiCtx, cancel := apiContext(c)
	defer cancel()

	catalog, err = ctx.API.GetSkillCatalog(apiCtx)
	if err != nil {
		return nil, err
	}
	if catalog == nil {
		catalog = &models.SkillCatalog{}
	}

	if err := ctx.Cache.SetCatalog(cacheCtx, userID, catalog, ctx.Config.FormTTL); err != nil {
		ctx.Logger.Warn("failed to cache catalog", zap.Int64("user_id", userID), zap.Error(err))
	}
	return catalog, nil
}

func validCategory(category string) bool {
	return category == models.SkillTechnical || category == models.SkillSoft
}

func (ctx *Context) skillsPicker(f *preference.Form, catalog *models.SkillCatalog, category string) *widgets.SkillsPicker {
	return &widgets.SkillsPicker{
		Category:   category,
		Catalog:    catalog.Names(category),
		Selected:   f.SkillsOf(category),
		Search:     f.SkillSearch[category],
		MaxSkills:  ctx.Config.MaxSkills,
		ProfileURL: ctx.Config.ProfileURL(),
	}
}

// withPicker runs fn with the skills picker of category over the open draft.
func withPicker(ctx *Context, c tele.Context, category string, fn func(s *formSession, p *widgets.SkillsPicker) error) error {
	if !validCategory(category) {
		return notify(c, "❌ Unknown skill category")
	}

	return withForm(ctx, c, func(s *formSession) error {
		catalog, err := catalogFor(ctx, c, s.userID)
		if err != nil {
			return ctx.apiFailure(c, "load skill catalog", err)
		}
		return fn(s, ctx.skillsPicker(s.form, catalog, category))
	})
}

func renderPicker(ctx *Context, c tele.Context, p *widgets.SkillsPicker) error {
	text, menu := p.Render()
	return show(ctx, c, text, menu)
}

func showSkills(ctx *Context, c tele.Context, category string) error {
	return withPicker(ctx, c, category, func(_ *formSession, p *widgets.SkillsPicker) error {
		return renderPicker(ctx, c, p)
	})
}

// handleSkillChange applies sk_add, sk_up, sk_down and sk_rm. The second
// argument is a catalog index for sk_add and a selection index otherwise.
// sk_add also carries the skill name, which may itself contain colons.
func handleSkillChange(ctx *Context, c tele.Context, action string, args []string) error {
	if len(args) < 2 {
		return notify(c, "❌ Invalid request")
	}
	i, err := strconv.Atoi(args[1])
	if err != nil {
		return notify(c, "❌ Invalid request")
	}
	var name string
	if action == widgets.ActionSkillAdd {
		if len(args) < 3 {
			return notify(c, "❌ Invalid request")
		}
		name = strings.Join(args[2:], ":")
	}

	return withPicker(ctx, c, args[0], func(s *formSession, p *widgets.SkillsPicker) error {
		var (
			skills  []models.Skill
			changed bool
		)

		switch action {
		case widgets.ActionSkillAdd:
			skills, changed = p.AddMatching(i, name)
			if !changed && len(p.Selected) >= ctx.Config.MaxSkills {
				_ = notify(c, "⚠️ Skill limit reached")
			}
		case widgets.ActionSkillUp, widgets.ActionSkillDown:
			if i < 0 || i >= len(p.Selected) {
				break
			}
			level := p.Selected[i].ProficiencyLevel + 1
			if action == widgets.ActionSkillDown {
				level = p.Selected[i].ProficiencyLevel - 1
			}
			skills, changed = p.UpdateRating(i, level)
		case widgets.ActionSkillRemove:
			skills, changed = p.Remove(i)
		}

		if !changed {
			return renderPicker(ctx, c, p)
		}

		s.form.SetSkills(p.Category, skills)
		if err := s.save(); err != nil {
			ctx.Logger.Error("failed to save form draft", zap.Int64("user_id", s.userID), zap.Error(err))
			return notify(c, "😔 Could not save your change")
		}

		p.Selected = s.form.SkillsOf(p.Category)
		return renderPicker(ctx, c, p)
	})
}

func startSkillSearch(ctx *Context, c tele.Context, category string) error {
	if !validCategory(category) {
		return notify(c, "❌ Unknown skill category")
	}

	if err := setUserState(ctx, c.Sender().ID, StateSkillSearch, category); err != nil {
		ctx.Logger.Error("failed to set user state", zap.Error(err))
	}
	return c.Send("🔍 Type part of a skill name:", utils.CancelKeyboard())
}

func handleSkillSearchInput(ctx *Context, c tele.Context, category string) error {
	if err := clearUserState(ctx, c.Sender().ID); err != nil {
		ctx.Logger.Warn("failed to clear state", zap.Error(err))
	}
	if err := c.Send("🔍 Searching…", utils.MainMenuKeyboard()); err != nil {
		return err
	}
	return setSkillSearch(ctx, c, category, utils.CleanInput(c.Text()))
}

func setSkillSearch(ctx *Context, c tele.Context, category, search string) error {
	return withPicker(ctx, c, category, func(s *formSession, p *widgets.SkillsPicker) error {
		if s.form.SkillSearch == nil {
			s.form.SkillSearch = map[string]string{}
		}
		if search == "" {
			delete(s.form.SkillSearch, category)
		} else {
			s.form.SkillSearch[category] = search
		}

		if err := s.save(); err != nil {
			ctx.Logger.Error("failed to save form draft", zap.Int64("user_id", s.userID), zap.Error(err))
		}

		p.Search = search
		return renderPicker(ctx, c, p)
	})
}

// ==================== Resumes ====================

func renderResumes(ctx *Context, c tele.Context, s *formSession) error {
	apiCtx, cancel := apiContext(c)
	defer cancel()

	resumes, err := ctx.API.ListResumes(apiCtx)
	if err != nil {
		return ctx.apiFailure(c, "list resumes", err)
	}

	selector := &widgets.ResumeSelector{
		Resumes:     resumes,
		PrimaryID:   s.form.State.PrimaryResumeID,
		AttachedIDs: s.form.State.AttachedResumeIDs,
		ProfileURL:  ctx.Config.ProfileURL(),
	}
	text, menu := selector.Render()
	return show(ctx, c, text, menu)
}

func showResumes(ctx *Context, c tele.Context) error {
	return withForm(ctx, c, func(s *formSession) error {
		return renderResumes(ctx, c, s)
	})
}

func handleResumeChange(ctx *Context, c tele.Context, action string, id int64) error {
	return withForm(ctx, c, func(s *formSession) error {
		switch action {
		case widgets.ActionResumePrimary:
			if id == 0 {
				s.form.SetPrimaryResume(nil)
			} else {
				s.form.SetPrimaryResume(&id)
			}
		case widgets.ActionResumeAttach:
			s.form.ToggleAttachedResume(id)
		}

		if err := s.save(); err != nil {
			ctx.Logger.Error("failed to save form draft", zap.Int64("user_id", s.userID), zap.Error(err))
			return notify(c, "😔 Could not save your change")
		}
		return renderResumes(ctx, c, s)
	})
}

// ==================== Certifications ====================

func renderCertifications(ctx *Context, c tele.Context, s *formSession) error {
	apiCtx, cancel := apiContext(c)
	defer cancel()

	certs, err := ctx.API.ListCertifications(apiCtx)
	if err != nil {
		return ctx.apiFailure(c, "list certifications", err)
	}

	selector := &widgets.CertificationsSelector{
		Certifications: certs,
		SelectedIDs:    s.form.State.CertificationIDs,
		ProfileURL:     ctx.Config.ProfileURL(),
	}
	text, menu := selector.Render()
	return show(ctx, c, text, menu)
}

func showCertifications(ctx *Context, c tele.Context) error {
	return withForm(ctx, c, func(s *formSession) error {
		return renderCertifications(ctx, c, s)
	})
}

func handleCertificationToggle(ctx *Context, c tele.Context, id int64) error {
	return withForm(ctx, c, func(s *formSession) error {
		s.form.ToggleCertification(id)

		if err := s.save(); err != nil {
			ctx.Logger.Error("failed to save form draft", zap.Int64("user_id", s.userID), zap.Error(err))
			return notify(c, "😔 Could not save your change")
		}
		return renderCertifications(ctx, c, s)
	})
}
