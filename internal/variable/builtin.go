package variable

import (
	"time"

	"github.com/uniprompt/uniprompt/internal/project"
)

// Builtins returns the built-in variables for a directory. All clock
// fields derive from the single now timestamp so they are mutually
// consistent within one invocation. Git-derived keys are omitted outside
// a repository rather than set to empty values.
func Builtins(now time.Time, dir string) map[string]string {
	vars := map[string]string{
		"CURRENT_DATE":     now.Format("2006-01-02"),
		"CURRENT_TIME":     now.Format("15:04:05"),
		"CURRENT_DATETIME": now.Format(time.RFC3339),
		"CURRENT_YEAR":     now.Format("2006"),
		"CURRENT_MONTH":    now.Format("01"),
		"CURRENT_DAY":      now.Format("02"),
	}

	if info, err := project.FromDirectory(dir); err == nil {
		vars["PROJECT_NAME"] = info.Name
		vars["PROJECT_ROOT"] = info.Root
	}

	if branch := project.Branch(dir); branch != "" {
		vars["GIT_BRANCH"] = branch
	}
	if commit := project.ShortCommit(dir); commit != "" {
		vars["GIT_COMMIT"] = commit
	}

	return vars
}
