package session

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/tidwall/gjson"

	"github.com/xtding233/gold-solver/internal/catalog"
)

// ErrInvalidSnapshot marks a snapshot document that is not a JSON object.
var ErrInvalidSnapshot = errors.New("invalid session snapshot")

// Snapshot is one observation of the player: current gold, owned item ids
// (duplicates meaningful) and optionally the item being built.
type Snapshot struct {
	Gold   float64  `json:"gold"`
	Items  []string `json:"items"`
	Target string   `json:"target,omitempty"`
	Player string   `json:"player,omitempty"`
}

// Decode reads either the simple shape
//
//	{"gold": 1300, "items": ["1036", 1036, {"itemID": 1028}], "target": "3071"}
//
// or a live client game-data document, where gold comes from
// activePlayer.currentGold and items from the matching allPlayers entry.
// Gold that is not a number becomes 0 and items that are not a list become
// empty; only a document that is not a JSON object is an error.
func Decode(raw []byte) (Snapshot, error) {
	if !gjson.ValidBytes(raw) {
		return Snapshot{}, fmt.Errorf("%w: malformed JSON", ErrInvalidSnapshot)
	}
	root := gjson.ParseBytes(raw)
	if !root.IsObject() {
		return Snapshot{}, fmt.Errorf("%w: root must be an object", ErrInvalidSnapshot)
	}

	if active := root.Get("activePlayer"); active.IsObject() {
		return decodeLive(root, active), nil
	}
	return Snapshot{
		Gold:   number(root.Get("gold")),
		Items:  itemIDs(root.Get("items")),
		Target: idString(root.Get("target")),
	}, nil
}

func decodeLive(root, active gjson.Result) Snapshot {
	s := Snapshot{
		Gold:   number(active.Get("currentGold")),
		Target: idString(root.Get("target")),
	}
	names := playerNames(active)
	if len(names) > 0 {
		s.Player = names[0]
	}

	root.Get("allPlayers").ForEach(func(_, p gjson.Result) bool {
		for _, n := range playerNames(p) {
			for _, want := range names {
				if n == want {
					s.Items = itemIDs(p.Get("items"))
					return false
				}
			}
		}
		return true
	})
	return s
}

// playerNames lists the identifiers a live client document may use for a
// player, most specific first.
func playerNames(p gjson.Result) []string {
	var out []string
	for _, key := range []string{"riotId", "summonerName"} {
		if v := strings.TrimSpace(p.Get(key).String()); v != "" {
			out = append(out, v)
		}
	}
	return out
}

func itemIDs(v gjson.Result) []string {
	if !v.IsArray() {
		return nil
	}
	var out []string
	v.ForEach(func(_, e gjson.Result) bool {
		if e.IsObject() {
			e = e.Get("itemID")
		}
		if id := idString(e); id != "" {
			out = append(out, id)
		}
		return true
	})
	return out
}

func idString(v gjson.Result) string {
	switch v.Type {
	case gjson.Number:
		return catalog.NormalizeID(strconv.FormatFloat(v.Num, 'f', -1, 64))
	case gjson.String:
		return catalog.NormalizeID(v.Str)
	default:
		return ""
	}
}

func number(v gjson.Result) float64 {
	switch v.Type {
	case gjson.Number:
		return v.Num
	case gjson.String:
		f, err := strconv.ParseFloat(strings.TrimSpace(v.Str), 64)
		if err != nil {
			return 0
		}
		return f
	default:
		return 0
	}
}
