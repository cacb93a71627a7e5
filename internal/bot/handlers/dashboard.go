package handlers

import (
	"errors"
	"fmt"
	"strconv"

	"talentgraph-bot/internal/bot/utils"
	"talentgraph-bot/internal/dashboard"
	"talentgraph-bot/internal/models"

	tele "gopkg.in/telebot.v3"
)

// /dashboard command
func HandleDashboard(ctx *Context) tele.HandlerFunc {
	return func(c tele.Context) error {
		return showCandidateDashboard(ctx, c, true)
	}
}

// showCandidateDashboard renders the candidate dashboard. Without reload the
// last loaded view is reused when there is one.
func showCandidateDashboard(ctx *Context, c tele.Context, reload bool) error {
	d := ctx.candidateDashboard(c.Sender().ID)

	view := d.View()
	if reload || isEmptyCandidateView(view) {
		apiCtx, cancel := apiContext(c)
		defer cancel()
		view = d.Load(apiCtx)
	}

	return show(ctx, c, utils.FormatCandidateDashboard(view), candidateKeyboard(view))
}

func isEmptyCandidateView(v *dashboard.CandidateView) bool {
	return len(v.Recommendations) == 0 && len(v.Invites) == 0 &&
		len(v.Matches) == 0 && len(v.Applications) == 0 && len(v.Errors) == 0
}

func showJob(ctx *Context, c tele.Context, jobID int64) error {
	view := ctx.candidateDashboard(c.Sender().ID).View()

	rec, ok := view.Recommendation(jobID)
	if !ok {
		_ = notify(c, "This job is no longer recommended")
		return showCandidateDashboard(ctx, c, true)
	}

	return show(ctx, c, utils.FormatJob(rec), jobKeyboard(jobID))
}

func handleJobAction(ctx *Context, c tele.Context, action string, jobID int64) error {
	d := ctx.candidateDashboard(c.Sender().ID)

	apiCtx, cancel := apiContext(c)
	defer cancel()

	var (
		view *dashboard.CandidateView
		err  error
		done string
	)
	switch action {
	case actionJobLike:
		view, err = d.Like(apiCtx, jobID)
		done = "👍 Liked"
	case actionJobPass:
		view, err = d.Pass(apiCtx, jobID)
		done = "👎 Passed"
	case actionJobApply:
		view, err = d.Apply(apiCtx, jobID)
		done = "📨 Application sent"
	}

	if errors.Is(err, dashboard.ErrInFlight) {
		return notify(c, "⏳ Already in progress")
	}
	if err != nil {
		return ctx.apiFailure(c, action, err)
	}

	_ = notify(c, done)
	return show(ctx, c, utils.FormatCandidateDashboard(view), candidateKeyboard(view))
}

// ==================== Recruiter ====================

func showRecruiterDashboard(ctx *Context, c tele.Context, postingID int64) error {
	apiCtx, cancel := apiContext(c)
	defer cancel()

	view := ctx.recruiterDashboard(c.Sender().ID).Load(apiCtx, postingID)
	return show(ctx, c, utils.FormatRecruiterDashboard(view), recruiterKeyboard(view))
}

func showRecruiterView(ctx *Context, c tele.Context) error {
	view := ctx.recruiterDashboard(c.Sender().ID).View()
	return show(ctx, c, utils.FormatRecruiterDashboard(view), recruiterKeyboard(view))
}

func handleCandidateAction(ctx *Context, c tele.Context, action string, args []string) error {
	if len(args) < 2 {
		return notify(c, "❌ Invalid request")
	}
	postingID, err1 := strconv.ParseInt(args[0], 10, 64)
	candidateID, err2 := strconv.ParseInt(args[1], 10, 64)
	if err1 != nil || err2 != nil {
		return notify(c, "❌ Invalid request")
	}

	d := ctx.recruiterDashboard(c.Sender().ID)

	apiCtx, cancel := apiContext(c)
	defer cancel()

	var view *dashboard.RecruiterView
	var err error
	if action == actionCandidateLike {
		view, err = d.Like(apiCtx, postingID, candidateID)
	} else {
		view, err = d.Pass(apiCtx, postingID, candidateID)
	}

	if errors.Is(err, dashboard.ErrInFlight) {
		return notify(c, "⏳ Already in progress")
	}
	if err != nil {
		return ctx.apiFailure(c, action, err)
	}

	return show(ctx, c, utils.FormatRecruiterDashboard(view), recruiterKeyboard(view))
}

func findApplication(apps []models.Application, id int64) (models.Application, bool) {
	for _, a := range apps {
		if a.ID == id {
			return a, true
		}
	}
	return models.Application{}, false
}

func showApplication(ctx *Context, c tele.Context, appID int64) error {
	view := ctx.recruiterDashboard(c.Sender().ID).View()

	app, ok := findApplication(view.Applications, appID)
	if !ok {
		return notify(c, "This application is no longer listed")
	}

	title := fmt.Sprintf("Job #%d", app.JobID)
	if app.Job != nil {
		title = app.Job.Title
	}
	text := fmt.Sprintf("*📋 %s*\n%s\nStatus: _%s_",
		utils.EscapeMarkdown(app.CandidateName),
		utils.EscapeMarkdown(title),
		utils.EscapeMarkdown(app.Status),
	)

	return show(ctx, c, text, applicationKeyboard(appID))
}

func handleApplicationStatus(ctx *Context, c tele.Context, args []string) error {
	if len(args) < 2 {
		return notify(c, "❌ Invalid request")
	}
	appID, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		return notify(c, "❌ Invalid request")
	}

	apiCtx, cancel := apiContext(c)
	defer cancel()

	view, err := ctx.recruiterDashboard(c.Sender().ID).SetApplicationStatus(apiCtx, appID, args[1])
	if errors.Is(err, dashboard.ErrInFlight) {
		return notify(c, "⏳ Already in progress")
	}
	if err != nil {
		return ctx.apiFailure(c, "update application", err)
	}

	_ = notify(c, "✅ Status updated")
	return show(ctx, c, utils.FormatRecruiterDashboard(view), recruiterKeyboard(view))
}
