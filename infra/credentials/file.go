package credentials

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/giovaniif/cafeteria/protocols"
	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

type fileCredentials struct {
	AdminUser     string `json:"admin_user" yaml:"admin_user" toml:"admin_user"`
	AdminPassword string `json:"admin_password" yaml:"admin_password" toml:"admin_password"`
}

// FileSource reads admin credentials from disk on every Load, so edits to
// the file apply to the next customer. The format follows the extension:
// .yaml/.yml, .toml, anything else is JSON.
type FileSource struct {
	path string
}

func NewFileSource(path string) *FileSource {
	return &FileSource{path: path}
}

func (s *FileSource) Load(_ context.Context) (protocols.Credentials, error) {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return protocols.Credentials{}, fmt.Errorf("%w: %s", protocols.ErrCredentialsNotFound, s.path)
	}
	if err != nil {
		return protocols.Credentials{}, fmt.Errorf("read %s: %w", s.path, err)
	}

	var parsed fileCredentials
	switch strings.ToLower(filepath.Ext(s.path)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &parsed)
	case ".toml":
		err = toml.Unmarshal(data, &parsed)
	default:
		err = json.Unmarshal(data, &parsed)
	}
	if err != nil {
		return protocols.Credentials{}, fmt.Errorf("parse %s: %w", s.path, err)
	}
	if parsed.AdminUser == "" || parsed.AdminPassword == "" {
		return protocols.Credentials{}, fmt.Errorf("%s: admin_user and admin_password are required", s.path)
	}

	return protocols.Credentials{Username: parsed.AdminUser, Password: parsed.AdminPassword}, nil
}
