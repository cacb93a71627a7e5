package validator

import (
	"fmt"
	"strconv"
	"strings"

	"talentgraph-bot/internal/models"

	"github.com/go-playground/validator/v10"
)

func registerRules(v *validator.Validate) error {
	if err := v.RegisterValidation("tags", validateTags); err != nil {
		return fmt.Errorf("register tags rule: %w", err)
	}

	v.RegisterStructValidation(validateFormState, models.FormState{})
	return nil
}

// validateTags checks a JSON-encoded tag list: size limit from the param,
// no blanks and no duplicates.
func validateTags(fl validator.FieldLevel) bool {
	limit, err := strconv.Atoi(fl.Param())
	if err != nil {
		return false
	}

	tags := models.DecodeTags(fl.Field().String())
	if len(tags) > limit {
		return false
	}

	seen := make(map[string]struct{}, len(tags))
	for _, tag := range tags {
		if strings.TrimSpace(tag) == "" {
			return false
		}
		if _, dup := seen[tag]; dup {
			return false
		}
		seen[tag] = struct{}{}
	}
	return true
}

func validateFormState(sl validator.StructLevel) {
	state := sl.Current().Interface().(models.FormState)

	if state.SalaryMin > 0 && state.SalaryMax > 0 && state.SalaryMin > state.SalaryMax {
		sl.ReportError(state.SalaryMin, "salary_min", "SalaryMin", "salary_range", "")
	}

	type key struct{ name, category string }
	seen := make(map[key]struct{}, len(state.Skills))
	for _, s := range state.Skills {
		k := key{s.SkillName, s.SkillCategory}
		if _, dup := seen[k]; dup {
			sl.ReportError(state.Skills, "skills", "Skills", "unique_skills", "")
			return
		}
		seen[k] = struct{}{}
	}
}
