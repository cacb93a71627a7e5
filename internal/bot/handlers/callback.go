package handlers

import (
	"strconv"
	"strings"

	"talentgraph-bot/internal/bot/widgets"

	"go.uber.org/zap"
	tele "gopkg.in/telebot.v3"
)

// Callback actions of the handler keyboards. Widget actions live in the
// widgets package.
const (
	actionProfileList      = "pf_list"
	actionProfileAdd       = "pf_add"
	actionProfileEdit      = "pf_edit"
	actionProfileDuplicate = "pf_dup"
	actionProfileDelete    = "pf_del"
	actionProfileSearch    = "pf_search"
	actionProfileWorktype  = "pf_wt"
	actionProfileReset     = "pf_reset"
	actionDeleteConfirm    = "pf_del_yes"
	actionDeleteCancel     = "pf_del_no"

	actionFormFields    = "form_fields"
	actionFormField     = "form_field"
	actionFormTags      = "form_tags"
	actionFormLocations = "form_locs"
	actionFormSkills    = "form_skills"
	actionFormResumes   = "form_resumes"
	actionFormCerts     = "form_certs"
	actionFormPreview   = "form_preview"
	actionFormSave      = "form_save"
	actionFormSaveNew   = "form_save_new"
	actionFormClose     = "form_close"

	actionTagAdd         = "tag_add"
	actionTagRemove      = "tag_rm"
	actionLocationAdd    = "loc_add"
	actionLocationRemove = "loc_rm"

	actionDashboardShow    = "db_show"
	actionDashboardRefresh = "db_refresh"
	actionJobShow          = "db_job"
	actionJobLike          = "db_like"
	actionJobPass          = "db_pass"
	actionJobApply         = "db_apply"

	actionRecruiterOpen     = "rc_open"
	actionRecruiterShow     = "rc_show"
	actionCandidateLike     = "rc_like"
	actionCandidatePass     = "rc_pass"
	actionApplicationShow   = "rc_app"
	actionApplicationStatus = "rc_status"
)

const respondedKey = "callback_responded"

// HandleCallback processes all callback queries from inline buttons
func HandleCallback(ctx *Context) tele.HandlerFunc {
	return func(c tele.Context) error {
		cb := c.Callback()
		if cb == nil {
			ctx.Logger.Warn("callback is nil")
			return nil
		}

		action, args := parseCallback(cb.Data)

		ctx.Logger.Debug("routing callback",
			zap.Int64("user_id", c.Sender().ID),
			zap.String("action", action),
			zap.Strings("args", args),
		)

		err := routeCallback(ctx, c, action, args)

		// every callback must be answered or the client keeps spinning
		if c.Get(respondedKey) == nil {
			_ = c.Respond()
		}
		return err
	}
}

// parseCallback splits "action:arg1:arg2". Telebot prefixes unique button
// data with \f.
func parseCallback(raw string) (string, []string) {
	raw = strings.TrimPrefix(raw, "\f")
	parts := strings.Split(raw, ":")
	return parts[0], parts[1:]
}

func routeCallback(ctx *Context, c tele.Context, action string, args []string) error {
	switch action {
	// preference list
	case actionProfileList:
		return showList(ctx, c)
	case actionProfileAdd:
		return handleProfileAdd(ctx, c)
	case actionProfileEdit:
		return withID(c, args, 0, func(id int64) error { return handleProfileEdit(ctx, c, id) })
	case actionProfileDuplicate:
		return withID(c, args, 0, func(id int64) error { return handleProfileDuplicate(ctx, c, id) })
	case actionProfileDelete:
		return withID(c, args, 0, func(id int64) error { return handleProfileDelete(ctx, c, id) })
	case actionDeleteConfirm:
		return handleDeleteConfirm(ctx, c)
	case actionDeleteCancel:
		return handleDeleteCancel(ctx, c)
	case actionProfileSearch:
		return startListSearch(ctx, c)
	case actionProfileWorktype:
		return withArg(c, args, 0, func(w string) error { return handleWorktypeFilter(ctx, c, w) })
	case actionProfileReset:
		return handleResetFilters(ctx, c)

	// form
	case widgets.ActionBack:
		return withForm(ctx, c, func(f *formSession) error { return showForm(ctx, c, f.form) })
	case actionFormFields:
		page := 0
		if len(args) > 0 {
			page, _ = strconv.Atoi(args[0])
		}
		return withForm(ctx, c, func(f *formSession) error { return showFields(ctx, c, f.form, page) })
	case actionFormField:
		return withArg(c, args, 0, func(key string) error { return startFieldInput(ctx, c, key) })
	case actionFormTags:
		return withArg(c, args, 0, func(field string) error { return showTags(ctx, c, field) })
	case actionTagAdd:
		return withArg(c, args, 0, func(field string) error { return startTagInput(ctx, c, field) })
	case actionTagRemove:
		return handleTagRemove(ctx, c, args)
	case actionFormLocations:
		return withForm(ctx, c, func(f *formSession) error {
			return show(ctx, c, locationsText(f.form), locationsKeyboard(f.form))
		})
	case actionLocationAdd:
		return startLocationInput(ctx, c)
	case actionLocationRemove:
		return handleLocationRemove(ctx, c, args)
	case actionFormPreview:
		return showPreview(ctx, c)
	case actionFormSave:
		return handleSave(ctx, c, false)
	case actionFormSaveNew:
		return handleSave(ctx, c, true)
	case actionFormClose:
		return handleFormClose(ctx, c)

	// widgets
	case actionFormSkills:
		return withArg(c, args, 0, func(category string) error { return showSkills(ctx, c, category) })
	case widgets.ActionSkillAdd, widgets.ActionSkillUp, widgets.ActionSkillDown, widgets.ActionSkillRemove:
		return handleSkillChange(ctx, c, action, args)
	case widgets.ActionSkillSearch:
		return withArg(c, args, 0, func(category string) error { return startSkillSearch(ctx, c, category) })
	case widgets.ActionSkillClear:
		return withArg(c, args, 0, func(category string) error { return setSkillSearch(ctx, c, category, "") })
	case actionFormResumes:
		return showResumes(ctx, c)
	case widgets.ActionResumePrimary, widgets.ActionResumeAttach:
		return withID(c, args, 0, func(id int64) error { return handleResumeChange(ctx, c, action, id) })
	case actionFormCerts:
		return showCertifications(ctx, c)
	case widgets.ActionCertToggle:
		return withID(c, args, 0, func(id int64) error { return handleCertificationToggle(ctx, c, id) })

	// dashboards
	case actionDashboardShow:
		return showCandidateDashboard(ctx, c, false)
	case actionDashboardRefresh:
		return showCandidateDashboard(ctx, c, true)
	case actionJobShow:
		return withID(c, args, 0, func(id int64) error { return showJob(ctx, c, id) })
	case actionJobLike, actionJobPass, actionJobApply:
		return withID(c, args, 0, func(id int64) error { return handleJobAction(ctx, c, action, id) })
	case actionRecruiterOpen:
		return withID(c, args, 0, func(id int64) error { return showRecruiterDashboard(ctx, c, id) })
	case actionRecruiterShow:
		return showRecruiterView(ctx, c)
	case actionCandidateLike, actionCandidatePass:
		return handleCandidateAction(ctx, c, action, args)
	case actionApplicationShow:
		return withID(c, args, 0, func(id int64) error { return showApplication(ctx, c, id) })
	case actionApplicationStatus:
		return handleApplicationStatus(ctx, c, args)

	default:
		ctx.Logger.Warn("unknown callback action",
			zap.String("action", action),
			zap.Strings("args", args),
		)
		return notify(c, "❓ Unknown action")
	}
}

func withArg(c tele.Context, args []string, i int, fn func(string) error) error {
	if len(args) <= i || args[i] == "" {
		return notify(c, "❌ Invalid request")
	}
	return fn(args[i])
}

func withID(c tele.Context, args []string, i int, fn func(int64) error) error {
	return withArg(c, args, i, func(s string) error {
		id, err := strconv.ParseInt(s, 10, 64)
		if err != nil || id < 0 {
			return notify(c, "❌ Invalid request")
		}
		return fn(id)
	})
}
