package catalog

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/klauspost/compress/zstd"
	"github.com/tidwall/gjson"
	"gopkg.in/yaml.v3"
)

// ErrInvalidCatalog marks a catalog document that cannot be used.
var ErrInvalidCatalog = errors.New("invalid item catalog")

var zstdMagic = []byte{0x28, 0xb5, 0x2f, 0xfd}

// rawItem mirrors one record of the item data file.
type rawItem struct {
	Name string `json:"name"`
	Gold struct {
		Total       float64 `json:"total"`
		Purchasable *bool   `json:"purchasable"`
	} `json:"gold"`
	From []any          `json:"from"`
	Maps map[string]bool `json:"maps"`
}

// Load reads the catalog file at path. Files ending in .zst (or starting with
// the zstd magic) are decompressed; .yaml/.yml files are decoded as YAML.
// Either a flat id -> record map or a {"version", "items"} wrapper is accepted.
func Load(path string, opts Options) (*Catalog, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalog %s: %w", path, err)
	}

	name := path
	if strings.EqualFold(filepath.Ext(name), ".zst") || bytes.HasPrefix(raw, zstdMagic) {
		if raw, err = decompress(raw); err != nil {
			return nil, fmt.Errorf("decompress catalog %s: %w", path, err)
		}
		name = strings.TrimSuffix(name, filepath.Ext(name))
	}
	switch strings.ToLower(filepath.Ext(name)) {
	case ".yaml", ".yml":
		if raw, err = yamlToJSON(raw); err != nil {
			return nil, fmt.Errorf("parse catalog %s: %w", path, err)
		}
	}

	c, err := Parse(raw, opts)
	if err != nil {
		return nil, fmt.Errorf("parse catalog %s: %w", path, err)
	}

	log := opts.logger()
	if verr := Validate(c); verr != nil {
		if opts.Strict {
			return nil, fmt.Errorf("catalog %s: %w", path, verr)
		}
		log.Warn("item catalog has integrity issues", "path", path, "err", verr)
	}
	log.Info("loaded item catalog", "path", path, "items", c.Len(), "version", c.Version(), "map", c.MapID())
	return c, nil
}

// Parse builds a catalog from a JSON document (zstd-compressed input is
// accepted too).
func Parse(raw []byte, opts Options) (*Catalog, error) {
	if bytes.HasPrefix(raw, zstdMagic) {
		var err error
		if raw, err = decompress(raw); err != nil {
			return nil, err
		}
	}
	if !gjson.ValidBytes(raw) {
		return nil, fmt.Errorf("%w: malformed JSON", ErrInvalidCatalog)
	}
	root := gjson.ParseBytes(raw)
	if !root.IsObject() {
		return nil, fmt.Errorf("%w: root must be an object", ErrInvalidCatalog)
	}

	body, version := root, ""
	if wrapped := root.Get("items"); wrapped.IsObject() {
		body = wrapped
		version = root.Get("version").String()
	}

	records := []byte(body.Raw)
	if err := validateRecords(records); err != nil {
		return nil, err
	}
	var items map[string]rawItem
	if err := json.Unmarshal(records, &items); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidCatalog, err)
	}

	ids := make([]string, 0, len(items))
	for id := range items {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	defs := make([]Def, 0, len(items))
	for _, id := range ids {
		ri := items[id]
		d := Def{
			ID:        id,
			Name:      ri.Name,
			TotalCost: int(math.Round(ri.Gold.Total)),
			Maps:      ri.Maps,
		}
		if ri.Gold.Purchasable != nil {
			d.NotPurchasable = !*ri.Gold.Purchasable
		}
		for _, v := range ri.From {
			switch x := v.(type) {
			case string:
				d.Children = append(d.Children, x)
			case float64:
				d.Children = append(d.Children, strconv.FormatFloat(x, 'f', -1, 64))
			}
		}
		defs = append(defs, d)
	}

	c := New(defs, opts)
	c.version = version
	c.digest = sha256Hex(raw)
	return c, nil
}

func sha256Hex(b []byte) string {
	sum := sha256.Sum256(b)
	return hex.EncodeToString(sum[:])
}

func decompress(raw []byte) ([]byte, error) {
	dec, err := zstd.NewReader(nil)
	if err != nil {
		return nil, err
	}
	defer dec.Close()
	return dec.DecodeAll(raw, nil)
}

// yamlToJSON re-encodes a YAML catalog as JSON. Numeric map keys (item ids
// written unquoted) become strings.
func yamlToJSON(raw []byte) ([]byte, error) {
	var doc any
	if err := yaml.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidCatalog, err)
	}
	return json.Marshal(jsonCompatible(doc))
}

func jsonCompatible(v any) any {
	switch x := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(x))
		for k, val := range x {
			out[k] = jsonCompatible(val)
		}
		return out
	case map[any]any:
		out := make(map[string]any, len(x))
		for k, val := range x {
			out[fmt.Sprint(k)] = jsonCompatible(val)
		}
		return out
	case []any:
		out := make([]any, len(x))
		for i, val := range x {
			out[i] = jsonCompatible(val)
		}
		return out
	default:
		return v
	}
}
