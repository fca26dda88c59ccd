package io

import (
	"encoding/json"
	"math"
	"strconv"

	perrors "github.com/matzehuels/treeplot/pkg/errors"
	"github.com/matzehuels/treeplot/pkg/tree"
)

// document is the decoded form shared by the JSON and TOML readers.
type document struct {
	Nodes []record `json:"nodes" toml:"nodes"`
}

// record keeps every field loosely typed so that missing keys can be told
// apart from empty ones.
type record struct {
	ID     any       `json:"id" toml:"id"`
	Links  *[]any    `json:"links" toml:"links"`
	LinkTo *[]any    `json:"link_to" toml:"link_to"`
	Pos    []float64 `json:"pos" toml:"pos"`
}

// outDocument is the encoded form. Identifiers are always strings.
type outDocument struct {
	Nodes []outRecord `json:"nodes" toml:"nodes"`
}

type outRecord struct {
	ID    string     `json:"id" toml:"id"`
	Links []string   `json:"links" toml:"links"`
	Pos   [2]float64 `json:"pos" toml:"pos"`
}

// buildTree converts decoded records into a Tree, failing on the first
// malformed record.
func buildTree(doc document) (*tree.Tree, error) {
	t := tree.New()
	for i, rec := range doc.Nodes {
		id, err := NormalizeID(rec.ID)
		if err != nil {
			return nil, perrors.Wrap(perrors.ErrCodeInvalidTree, err, "node #%d: id", i)
		}

		rawLinks := rec.Links
		if rawLinks == nil {
			rawLinks = rec.LinkTo
		}
		if rawLinks == nil {
			return nil, perrors.New(perrors.ErrCodeInvalidTree, "node %s: missing links", id)
		}
		links := make([]tree.ID, len(*rawLinks))
		for j, raw := range *rawLinks {
			l, err := NormalizeID(raw)
			if err != nil {
				return nil, perrors.Wrap(perrors.ErrCodeInvalidTree, err, "node %s: link #%d", id, j)
			}
			links[j] = l
		}

		if rec.Pos == nil {
			return nil, perrors.New(perrors.ErrCodeInvalidTree, "node %s: missing pos", id)
		}
		if len(rec.Pos) != 2 {
			return nil, perrors.New(perrors.ErrCodeInvalidTree, "node %s: pos must have 2 coordinates, got %d", id, len(rec.Pos))
		}

		n := tree.Node{Links: links, Pos: tree.Position{X: rec.Pos[0], Y: rec.Pos[1]}}
		if err := t.Add(id, n); err != nil {
			return nil, perrors.Wrap(perrors.ErrCodeInvalidTree, err, "node %s", id)
		}
	}
	return t, nil
}

// NormalizeID converts a decoded identifier to an ID. It accepts strings,
// json.Number (JSON with UseNumber), int32 and int64 (TOML, BSON) and
// integral floats within the int64 range. Integers become their decimal
// string.
func NormalizeID(v any) (tree.ID, error) {
	var s string
	switch x := v.(type) {
	case nil:
		return "", perrors.New(perrors.ErrCodeInvalidNodeID, "missing id")
	case string:
		s = x
	case json.Number:
		n, err := x.Int64()
		if err != nil {
			return "", perrors.New(perrors.ErrCodeInvalidNodeID, "id %s is not an integer", x)
		}
		s = strconv.FormatInt(n, 10)
	case int64:
		s = strconv.FormatInt(x, 10)
	case int32:
		s = strconv.FormatInt(int64(x), 10)
	case int:
		s = strconv.Itoa(x)
	case float64:
		if x != math.Trunc(x) || math.IsInf(x, 0) {
			return "", perrors.New(perrors.ErrCodeInvalidNodeID, "id %v is not an integer", x)
		}
		if x < math.MinInt64 || x >= math.MaxInt64 {
			return "", perrors.New(perrors.ErrCodeInvalidNodeID, "id %v is out of range", x)
		}
		s = strconv.FormatInt(int64(x), 10)
	default:
		return "", perrors.New(perrors.ErrCodeInvalidNodeID, "unsupported id type %T", v)
	}
	if err := perrors.ValidateNodeID(s); err != nil {
		return "", err
	}
	return tree.ID(s), nil
}

func toOutDocument(t *tree.Tree) outDocument {
	out := outDocument{Nodes: make([]outRecord, 0, t.Len())}
	for id, n := range t.All() {
		links := make([]string, len(n.Links))
		for i, l := range n.Links {
			links[i] = string(l)
		}
		out.Nodes = append(out.Nodes, outRecord{
			ID:    string(id),
			Links: links,
			Pos:   [2]float64{n.Pos.X, n.Pos.Y},
		})
	}
	return out
}
