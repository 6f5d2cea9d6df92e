package variable

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestBuiltinsConsistentClock(t *testing.T) {
	now := time.Date(2025, time.March, 7, 14, 30, 45, 0, time.UTC)
	vars := Builtins(now, t.TempDir())

	assert.Equal(t, "2025-03-07", vars["CURRENT_DATE"])
	assert.Equal(t, "14:30:45", vars["CURRENT_TIME"])
	assert.Equal(t, "2025", vars["CURRENT_YEAR"])
	assert.Equal(t, "03", vars["CURRENT_MONTH"])
	assert.Equal(t, "07", vars["CURRENT_DAY"])
	assert.Equal(t, "2025-03-07T14:30:45Z", vars["CURRENT_DATETIME"])
}

func TestBuiltinsOutsideGitRepository(t *testing.T) {
	dir := t.TempDir()
	vars := Builtins(time.Now(), dir)

	// Git keys are omitted, not empty.
	_, hasBranch := vars["GIT_BRANCH"]
	_, hasCommit := vars["GIT_COMMIT"]
	assert.False(t, hasBranch)
	assert.False(t, hasCommit)

	assert.NotEmpty(t, vars["PROJECT_NAME"])
	assert.NotEmpty(t, vars["PROJECT_ROOT"])
}
