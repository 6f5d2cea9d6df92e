package template

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
)

// EnvSnapshot captures the environment visible to ${NAME} markers: the
// process environment plus, when dir is non-empty, a project-local .env
// file. Real environment variables win over .env entries.
func EnvSnapshot(dir string) map[string]string {
	env := make(map[string]string)

	if dir != "" {
		path := filepath.Join(dir, ".env")
		if fileEnv, err := godotenv.Read(path); err == nil {
			log.Debug().Str("path", path).Int("entries", len(fileEnv)).Msg("loaded project .env")
			for k, v := range fileEnv {
				env[k] = v
			}
		}
	}

	for _, kv := range os.Environ() {
		if idx := strings.IndexByte(kv, '='); idx > 0 {
			env[kv[:idx]] = kv[idx+1:]
		}
	}

	return env
}
