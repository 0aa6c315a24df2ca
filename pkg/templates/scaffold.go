package templates

import (
	"encoding/json"

	"github.com/arthur-debert/vuegen/pkg/errors"
	"github.com/arthur-debert/vuegen/pkg/types"
)

// AddDefinition appends def to the manifest of root, creating the manifest
// when there is none. Existing entries are kept byte for byte. The registry
// content is not touched; the next Load picks the new definition up.
func (r *Registry) AddDefinition(root string, def types.TemplateDefinition) (string, error) {
	path := r.ManifestPath(root)

	def.Root = root
	if _, err := validate(def); err != nil {
		return path, err
	}

	var entries []json.RawMessage
	if r.fs.Exists(path) {
		data, err := r.fs.ReadFile(path)
		if err != nil {
			return path, errors.Wrapf(err, errors.ErrManifestRead, "failed to read manifest %s", path).
				WithDetail("path", path)
		}
		if err := json.Unmarshal(data, &entries); err != nil {
			return path, errors.Wrapf(err, errors.ErrManifestParse, "malformed manifest %s", path).
				WithDetail("path", path)
		}
	}

	encoded, err := json.Marshal(def)
	if err != nil {
		return path, errors.Wrap(err, errors.ErrInternal, "failed to encode definition")
	}
	entries = append(entries, encoded)

	out, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return path, errors.Wrap(err, errors.ErrInternal, "failed to encode manifest")
	}
	if err := r.fs.WriteFile(path, append(out, '\n'), 0644); err != nil {
		return path, errors.Wrapf(err, errors.ErrFileWrite, "failed to write manifest %s", path).
			WithDetail("path", path)
	}

	r.logger.Info().Str("manifest", path).Str("source", def.Source.Value).Msg("Added template definition")
	return path, nil
}
