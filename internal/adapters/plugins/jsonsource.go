package plugins

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"go.trai.ch/grove/internal/core/domain"
	"go.trai.ch/grove/internal/core/ports"
	"go.trai.ch/zerr"
	"gopkg.in/yaml.v3"
)

var recordExtensions = []string{".json", ".yaml", ".yml"}

// reservedFields are node keys a record cannot set.
var reservedFields = []string{"id", "parent", "internal"}

type jsonOptions struct {
	Path      string   `yaml:"path" validate:"required"`
	Type      string   `yaml:"type" validate:"required"`
	IDField   string   `yaml:"idField"`
	Children  string   `yaml:"childrenField"`
	ChildType string   `yaml:"childType" validate:"required_with=Children"`
	Ignore    []string `yaml:"ignore"`
}

// jsonSource turns records in JSON or YAML files into typed nodes. Records
// nested under the children field become child nodes linked by parent.
type jsonSource struct {
	opts jsonOptions
	root string
}

func newJSONSource(plugin *domain.Plugin, cfg *domain.Config) (ports.NodeSourcer, error) {
	opts, err := decodeOptions[jsonOptions](plugin)
	if err != nil {
		return nil, err
	}
	if opts.IDField == "" {
		opts.IDField = "id"
	}

	root := opts.Path
	if !filepath.IsAbs(root) {
		root = filepath.Join(cfg.Root, root)
	}
	return &jsonSource{opts: *opts, root: root}, nil
}

func (s *jsonSource) SourceNodes(ctx context.Context, args ports.SourceArgs) error {
	files, err := s.files()
	if err != nil {
		return err
	}

	seen := make(map[string]struct{})
	for _, file := range files {
		records, err := readRecords(file)
		if err != nil {
			return err
		}
		for i, record := range records {
			key := recordKey(record, s.opts.IDField, fmt.Sprintf("%s#%d", file, i))
			if err := s.createRecord(ctx, args.Actions, record, key, seen); err != nil {
				return err
			}
		}
	}

	return s.deleteVanished(ctx, args.Actions, seen)
}

func (s *jsonSource) files() ([]string, error) {
	info, err := os.Stat(s.root)
	if err != nil {
		return nil, zerr.With(zerr.Wrap(err, "failed to stat record path"), "path", s.root)
	}
	if !info.IsDir() {
		return []string{s.root}, nil
	}

	var files []string
	for rel, err := range walkFiles(s.root, s.opts.Ignore) {
		if err != nil {
			return nil, err
		}
		if slices.Contains(recordExtensions, strings.ToLower(filepath.Ext(rel))) {
			files = append(files, filepath.Join(s.root, filepath.FromSlash(rel)))
		}
	}
	return files, nil
}

func (s *jsonSource) createRecord(
	ctx context.Context,
	actions ports.NodeActions,
	record map[string]any,
	key string,
	seen map[string]struct{},
) error {
	var children []any
	if s.opts.Children != "" {
		children, _ = record[s.opts.Children].([]any)
	}

	parent, err := s.recordNode(s.opts.Type, key, record)
	if err != nil {
		return err
	}
	if err := actions.CreateNode(ctx, parent); err != nil {
		return err
	}
	seen[parent.ID] = struct{}{}

	for i, raw := range children {
		child, ok := raw.(map[string]any)
		if !ok {
			continue
		}
		childKey := key + "/" + recordKey(child, s.opts.IDField, fmt.Sprint(i))
		node, err := s.recordNode(s.opts.ChildType, childKey, child)
		if err != nil {
			return err
		}
		node.Parent = parent.ID
		if err := actions.CreateNode(ctx, node); err != nil {
			return err
		}
		seen[node.ID] = struct{}{}
	}
	return nil
}

func (s *jsonSource) recordNode(typeName, key string, record map[string]any) (*domain.Node, error) {
	fields := make(map[string]any, len(record)+2)
	for k, v := range record {
		if k == s.opts.Children || slices.Contains(reservedFields, k) {
			continue
		}
		fields[k] = v
	}
	fields["recordKey"] = key
	fields["sourcePath"] = s.root

	node, err := newNode(JSONPlugin, typeName, typeName+":"+key, fields)
	if err != nil {
		return nil, err
	}
	node.Internal.MediaType = "application/json"
	return node, nil
}

// deleteVanished deletes this instance's nodes whose record no longer exists.
func (s *jsonSource) deleteVanished(ctx context.Context, actions ports.NodeActions, seen map[string]struct{}) error {
	types := []string{s.opts.Type}
	if s.opts.ChildType != "" && s.opts.ChildType != s.opts.Type {
		types = append(types, s.opts.ChildType)
	}

	for _, typeName := range types {
		nodes, err := actions.GetNodesByType(ctx, typeName)
		if err != nil {
			return err
		}
		for _, node := range nodes {
			if node.Owner() != JSONPlugin || node.Fields["sourcePath"] != s.root {
				continue
			}
			if _, ok := seen[node.ID]; ok {
				continue
			}
			if err := actions.DeleteNode(ctx, node); err != nil {
				return err
			}
		}
	}
	return nil
}

// readRecords decodes a file holding one record or a list of records.
func readRecords(file string) ([]map[string]any, error) {
	data, err := os.ReadFile(file) //nolint:gosec // Path comes from plugin options
	if err != nil {
		return nil, zerr.With(zerr.Wrap(err, "failed to read records"), "path", file)
	}

	var doc any
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, zerr.With(zerr.Wrap(err, "failed to parse records"), "path", file)
	}

	switch v := doc.(type) {
	case nil:
		return nil, nil
	case map[string]any:
		return []map[string]any{v}, nil
	case []any:
		records := make([]map[string]any, 0, len(v))
		for _, item := range v {
			if record, ok := item.(map[string]any); ok {
				records = append(records, record)
			}
		}
		return records, nil
	default:
		return nil, zerr.With(zerr.New("records must be an object or a list of objects"), "path", file)
	}
}

func recordKey(record map[string]any, idField, fallback string) string {
	if v, ok := record[idField]; ok && v != nil {
		return fmt.Sprint(v)
	}
	return fallback
}
