package plugins

import (
	"context"
	"mime"
	"os"
	"path"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"go.trai.ch/grove/internal/core/domain"
	"go.trai.ch/grove/internal/core/ports"
	"go.trai.ch/zerr"
	"golang.org/x/sync/semaphore"
)

// FileType is the node type created by the filesystem source.
const FileType = "File"

type filesystemOptions struct {
	Path   string   `yaml:"path" validate:"required"`
	Name   string   `yaml:"name"`
	Ignore []string `yaml:"ignore"`
}

// filesystemSource creates a File node for every file under a directory.
type filesystemSource struct {
	root   string
	name   string
	ignore []string
	sem    *semaphore.Weighted
}

func newFilesystemSource(plugin *domain.Plugin, cfg *domain.Config) (ports.NodeSourcer, error) {
	opts, err := decodeOptions[filesystemOptions](plugin)
	if err != nil {
		return nil, err
	}

	root := opts.Path
	if !filepath.IsAbs(root) {
		root = filepath.Join(cfg.Root, root)
	}
	name := opts.Name
	if name == "" {
		name = filepath.Base(root)
	}

	return &filesystemSource{
		root:   root,
		name:   name,
		ignore: opts.Ignore,
		sem:    semaphore.NewWeighted(int64(runtime.GOMAXPROCS(0))),
	}, nil
}

// SourceNodes hashes files as cascading work and deletes the nodes of files
// that no longer exist.
func (s *filesystemSource) SourceNodes(ctx context.Context, args ports.SourceArgs) error {
	existing, err := args.Actions.GetNodesByType(ctx, FileType)
	if err != nil {
		return err
	}

	seen := make(map[string]struct{})
	for rel, err := range walkFiles(s.root, s.ignore) {
		if err != nil {
			return err
		}
		seen[s.nodeID(rel)] = struct{}{}

		args.Actions.Go(func(ctx context.Context) error {
			if err := s.sem.Acquire(ctx, 1); err != nil {
				return err
			}
			defer s.sem.Release(1)

			node, err := s.fileNode(rel)
			if err != nil {
				return err
			}
			return args.Actions.CreateNode(ctx, node)
		})
	}

	for _, node := range existing {
		if node.Owner() != FilesystemPlugin || node.Fields["sourceInstanceName"] != s.name {
			continue
		}
		if _, ok := seen[node.ID]; ok {
			continue
		}
		args.Logger.Debug("[" + s.name + "] file removed: " + node.ID)
		if err := args.Actions.DeleteNode(ctx, node); err != nil {
			return err
		}
	}
	return nil
}

func (s *filesystemSource) nodeID(rel string) string {
	return domain.CreateNodeID(FilesystemPlugin, s.name+":"+rel)
}

func (s *filesystemSource) fileNode(rel string) (*domain.Node, error) {
	abs := filepath.Join(s.root, filepath.FromSlash(rel))
	info, err := os.Stat(abs)
	if err != nil {
		return nil, zerr.With(zerr.Wrap(err, "failed to stat file"), "path", abs)
	}
	digest, err := fileDigest(abs)
	if err != nil {
		return nil, err
	}

	base := path.Base(rel)
	ext := path.Ext(base)
	return &domain.Node{
		ID: s.nodeID(rel),
		Internal: domain.NodeInternal{
			Type:          FileType,
			ContentDigest: digest,
			MediaType:     mime.TypeByExtension(ext),
			Description:   "File \"" + rel + "\"",
		},
		Fields: map[string]any{
			"sourceInstanceName": s.name,
			"absolutePath":       abs,
			"relativePath":       rel,
			"relativeDirectory":  strings.TrimSuffix(path.Dir(rel), "."),
			"base":               base,
			"name":               strings.TrimSuffix(base, ext),
			"extension":          strings.TrimPrefix(ext, "."),
			"size":               info.Size(),
			"modifiedTime":       info.ModTime().UTC().Format(time.RFC3339),
		},
	}, nil
}
