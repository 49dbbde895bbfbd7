package cache

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/okian/mlbspray/internal/domain/model"
	"github.com/okian/mlbspray/pkg/logger"
	"github.com/okian/mlbspray/pkg/metrics"
)

const (
	// DefaultMinValidSize is the size an artifact must exceed to be reused.
	DefaultMinValidSize = 2048

	defaultFileMode = 0o644
	dirMode         = 0o755
	artifactExt     = ".json"
)

// FileStore is a Store backed by the local filesystem:
// <root>/<season>/GAMEPK_<id>_<home>_VS_<away>.json
type FileStore struct {
	root         string
	minValidSize int64
	validation   Validation
	fileMode     os.FileMode
	log          logger.Logger
}

var _ Store = (*FileStore)(nil)

// NewFileStore creates a FileStore rooted at root.
func NewFileStore(root string, opts ...Option) *FileStore {
	s := &FileStore{
		root:         root,
		minValidSize: DefaultMinValidSize,
		validation:   ValidateSize,
		fileMode:     defaultFileMode,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.log == nil {
		s.log = logger.Get().Named("cache")
	}
	return s
}

// Root returns the cache root directory.
func (s *FileStore) Root() string { return s.root }

// SeasonDir implements Store.
func (s *FileStore) SeasonDir(season int) string {
	return filepath.Join(s.root, strconv.Itoa(season))
}

// Path implements Store.
func (s *FileStore) Path(ref model.GameRef) string {
	name := fmt.Sprintf("GAMEPK_%d_%s_VS_%s%s",
		ref.GamePK, safeSegment(ref.HomeTeam), safeSegment(ref.AwayTeam), artifactExt)
	return filepath.Join(s.SeasonDir(ref.Season()), name)
}

// safeSegment keeps team codes from introducing path separators.
func safeSegment(s string) string {
	return strings.Map(func(r rune) rune {
		if r == '/' || r == '\\' || r == os.PathSeparator {
			return '-'
		}
		return r
	}, s)
}

// IsValid implements Store.
func (s *FileStore) IsValid(ctx context.Context, path string) bool {
	info, err := os.Stat(path)
	if err != nil || !info.Mode().IsRegular() {
		return false
	}
	if info.Size() <= s.minValidSize {
		return false
	}
	if s.validation != ValidateContent {
		return true
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return false
	}
	if !hasAllPlays(data) {
		s.log.Debug(ctx, "cached artifact failed content validation", logger.String("path", path))
		return false
	}
	return true
}

func hasAllPlays(data []byte) bool {
	var top map[string]json.RawMessage
	if err := json.Unmarshal(data, &top); err != nil {
		return false
	}
	for k := range top {
		if strings.EqualFold(k, "allPlays") {
			return true
		}
	}
	return false
}

// Write implements Store. The payload is the document's raw bytes re-indented
// when present, otherwise the typed document. It lands in a temp file in the
// target directory and is renamed over path.
func (s *FileStore) Write(ctx context.Context, path string, doc *model.GameDocument) error {
	payload, err := encode(doc)
	if err != nil {
		metrics.RecordCacheWriteError()
		return fmt.Errorf("%w: %s: %w", ErrWriteFailed, path, err)
	}
	if err := s.writeAtomic(path, payload); err != nil {
		metrics.RecordCacheWriteError()
		return fmt.Errorf("%w: %s: %w", ErrWriteFailed, path, err)
	}
	metrics.RecordCacheWrite(len(payload))
	s.log.Debug(ctx, "cached artifact written", logger.String("path", path), logger.Int("bytes", len(payload)))
	return nil
}

func encode(doc *model.GameDocument) ([]byte, error) {
	if doc == nil {
		return nil, errors.New("nil document")
	}
	var buf bytes.Buffer
	if len(doc.Raw) > 0 {
		if err := json.Indent(&buf, doc.Raw, "", "  "); err != nil {
			return nil, err
		}
	} else {
		b, err := json.MarshalIndent(doc, "", "  ")
		if err != nil {
			return nil, err
		}
		buf.Write(b)
	}
	buf.WriteByte('\n')
	return buf.Bytes(), nil
}

func (s *FileStore) writeAtomic(path string, payload []byte) (err error) {
	dir := filepath.Dir(path)
	if err = os.MkdirAll(dir, dirMode); err != nil {
		return err
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+"-*.tmp")
	if err != nil {
		return err
	}
	tmpPath := tmp.Name()
	defer func() {
		if err != nil {
			_ = os.Remove(tmpPath)
		}
	}()

	if _, err = tmp.Write(payload); err != nil {
		_ = tmp.Close()
		return err
	}
	if err = tmp.Close(); err != nil {
		return err
	}
	if err = os.Chmod(tmpPath, s.fileMode); err != nil {
		return err
	}
	return os.Rename(tmpPath, path)
}

// Read implements Store.
func (s *FileStore) Read(_ context.Context, path string) (*model.GameDocument, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, path)
		}
		return nil, fmt.Errorf("%w: %s: %w", ErrReadFailed, path, err)
	}
	doc, err := model.DecodeGameDocument(data)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrParse, path, err)
	}
	return doc, nil
}

// Size implements Store.
func (s *FileStore) Size(_ context.Context, path string) (int64, error) {
	info, err := os.Stat(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return 0, fmt.Errorf("%w: %s", ErrNotFound, path)
		}
		return 0, fmt.Errorf("%w: %s: %w", ErrReadFailed, path, err)
	}
	return info.Size(), nil
}

// List implements Store.
func (s *FileStore) List(_ context.Context, season int) ([]string, error) {
	dir := s.SeasonDir(season)
	info, err := os.Stat(dir)
	if err != nil || !info.IsDir() {
		return nil, fmt.Errorf("%w: %s", ErrSeasonNotFound, dir)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrReadFailed, dir, err)
	}

	// os.ReadDir returns entries sorted by name.
	paths := make([]string, 0, len(entries))
	for _, e := range entries {
		name := e.Name()
		if !e.Type().IsRegular() || strings.HasPrefix(name, ".") || filepath.Ext(name) != artifactExt {
			continue
		}
		paths = append(paths, filepath.Join(dir, name))
	}
	return paths, nil
}
