package localization

import (
	"encoding/json"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/nicksnyder/go-i18n/v2/i18n"
	"gopkg.in/yaml.v3"
)

func defaultFormats() map[string]i18n.UnmarshalFunc {
	return map[string]i18n.UnmarshalFunc{
		".yaml": yaml.Unmarshal,
		".yml":  yaml.Unmarshal,
		".toml": toml.Unmarshal,
		".json": json.Unmarshal,
	}
}

func normalizeExt(ext string) string {
	ext = strings.ToLower(strings.TrimSpace(ext))
	if ext != "" && !strings.HasPrefix(ext, ".") {
		ext = "." + ext
	}
	return ext
}

// decodeDocument parses a whole translation file. A document that fails to
// parse or is not a mapping yields ok == false.
func decodeDocument(unmarshal i18n.UnmarshalFunc, data []byte) (map[string]any, bool, error) {
	var doc any
	if err := unmarshal(data, &doc); err != nil {
		return nil, false, err
	}
	payload, ok := asStringMap(doc)
	return payload, ok, nil
}
