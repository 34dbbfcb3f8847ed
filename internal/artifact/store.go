package artifact

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/afero"

	"github.com/appforge-labs/appforge/internal/archive"
	"github.com/appforge-labs/appforge/internal/branding"
	apperrors "github.com/appforge-labs/appforge/internal/errors"
	"github.com/appforge-labs/appforge/internal/output"
)

// Directory layout under the store root.
const (
	WorkDir    = "work"
	ArchiveDir = "archives"

	archiveExt    = ".zip"
	partialSuffix = ".partial"
)

// ContentType is the media type of every published archive.
const ContentType = "application/zip"

// DefaultTTL is how long an unreleased archive stays retrievable.
const DefaultTTL = 30 * time.Minute

const dirPerm = 0o755

// Tree is a file tree that can write itself under a directory.
type Tree interface {
	Materialize(fsys afero.Fs, dir string) ([]string, error)
}

// Handle identifies a published archive.
type Handle struct {
	ID        string
	Entries   int
	Size      int64
	CreatedAt time.Time
}

// Artifact is an open archive ready to be streamed to a client. Callers must
// Close it.
type Artifact struct {
	ID          string
	Filename    string
	ContentType string
	Size        int64
	CreatedAt   time.Time

	file afero.File
}

func (a *Artifact) Read(p []byte) (int, error) { return a.file.Read(p) }

func (a *Artifact) Seek(offset int64, whence int) (int64, error) {
	return a.file.Seek(offset, whence)
}

func (a *Artifact) Close() error { return a.file.Close() }

type entry struct {
	path    string
	entries int
	size    int64
	created time.Time
}

// Store owns the workspace and archive directories and the id index.
type Store struct {
	fs    afero.Fs
	root  string
	ttl   time.Duration
	level int
	now   func() time.Time

	mu    sync.Mutex
	index map[uuid.UUID]entry
}

// Option configures a Store.
type Option func(*Store)

// WithFs sets the filesystem the store writes to. Defaults to the OS
// filesystem.
func WithFs(fsys afero.Fs) Option {
	return func(s *Store) {
		s.fs = fsys
	}
}

// WithTTL sets how long archives stay retrievable. Non-positive values keep
// the default.
func WithTTL(ttl time.Duration) Option {
	return func(s *Store) {
		if ttl > 0 {
			s.ttl = ttl
		}
	}
}

// WithLevel sets the deflate level used when packing.
func WithLevel(level int) Option {
	return func(s *Store) {
		s.level = level
	}
}

// WithClock overrides the time source.
func WithClock(now func() time.Time) Option {
	return func(s *Store) {
		s.now = now
	}
}

// NewStore creates a store rooted at root, creating its directories and
// removing leftovers from a previous process.
func NewStore(root string, opts ...Option) (*Store, error) {
	s := &Store{
		fs:    afero.NewOsFs(),
		root:  root,
		ttl:   DefaultTTL,
		level: archive.DefaultLevel,
		now:   time.Now,
		index: make(map[uuid.UUID]entry),
	}
	for _, opt := range opts {
		opt(s)
	}

	// Archives from an earlier run are not in the index and can never be served.
	for _, dir := range []string{WorkDir, ArchiveDir} {
		path := filepath.Join(root, dir)
		if err := s.fs.RemoveAll(path); err != nil {
			return nil, fmt.Errorf("clearing %s: %w", path, err)
		}
		if err := s.fs.MkdirAll(path, dirPerm); err != nil {
			return nil, fmt.Errorf("creating %s: %w", path, err)
		}
	}
	return s, nil
}

// Root returns the store's root directory.
func (s *Store) Root() string { return s.root }

// TTL returns how long archives stay retrievable.
func (s *Store) TTL() time.Duration { return s.ttl }

// Publish writes tree into a fresh workspace, packs it and records the
// archive. The workspace is always removed. On failure or cancellation the
// partial archive is removed too and a *errors.PackagingError is returned.
func (s *Store) Publish(ctx context.Context, tree Tree) (Handle, error) {
	if err := ctx.Err(); err != nil {
		return Handle{}, apperrors.NewPackagingError("publishing", err)
	}

	id := uuid.New()
	work := s.workspacePath(id)
	final := s.archivePath(id)
	partial := final + partialSuffix
	log := output.With("id", id.String())

	defer func() {
		if err := s.fs.RemoveAll(work); err != nil {
			log.Warn("removing workspace", "err", err)
		}
	}()

	if _, err := tree.Materialize(s.fs, work); err != nil {
		return Handle{}, apperrors.NewPackagingError("writing workspace", err)
	}
	if err := ctx.Err(); err != nil {
		return Handle{}, apperrors.NewPackagingError("writing workspace", err)
	}

	entries, err := s.pack(ctx, work, partial)
	if err != nil {
		_ = s.fs.Remove(partial)
		return Handle{}, apperrors.NewPackagingError("packing archive", err)
	}

	info, err := s.fs.Stat(partial)
	if err != nil {
		_ = s.fs.Remove(partial)
		return Handle{}, apperrors.NewPackagingError("packing archive", err)
	}
	if err := s.fs.Rename(partial, final); err != nil {
		_ = s.fs.Remove(partial)
		return Handle{}, apperrors.NewPackagingError("finalizing archive", err)
	}

	e := entry{path: final, entries: entries, size: info.Size(), created: s.now()}
	s.mu.Lock()
	s.index[id] = e
	s.mu.Unlock()

	log.Debug("archive published", "entries", entries, "bytes", e.size)
	return Handle{ID: id.String(), Entries: entries, Size: e.size, CreatedAt: e.created}, nil
}

func (s *Store) pack(ctx context.Context, dir, dest string) (int, error) {
	f, err := s.fs.Create(dest)
	if err != nil {
		return 0, fmt.Errorf("creating %s: %w", dest, err)
	}
	n, err := archive.Pack(ctx, s.fs, dir, f, s.level)
	if closeErr := f.Close(); closeErr != nil && err == nil {
		err = fmt.Errorf("closing %s: %w", dest, closeErr)
	}
	return n, err
}

// Open returns the archive published under id. Unknown, malformed and
// expired ids yield a *errors.RetrievalError.
func (s *Store) Open(id string) (*Artifact, error) {
	key, err := uuid.Parse(id)
	if err != nil {
		return nil, apperrors.NewRetrievalError(id, "malformed artifact id")
	}

	s.mu.Lock()
	e, ok := s.index[key]
	if ok && s.expired(e, s.now()) {
		delete(s.index, key)
		s.mu.Unlock()
		s.remove(key, e)
		return nil, apperrors.NewRetrievalError(id, "artifact expired")
	}
	s.mu.Unlock()
	if !ok {
		return nil, apperrors.NewRetrievalError(id, "no such artifact")
	}

	f, err := s.fs.Open(e.path)
	if err != nil {
		return nil, apperrors.NewRetrievalError(id, fmt.Sprintf("opening archive: %v", err))
	}
	return &Artifact{
		ID:          key.String(),
		Filename:    branding.ArchiveName(),
		ContentType: ContentType,
		Size:        e.size,
		CreatedAt:   e.created,
		file:        f,
	}, nil
}

// Release removes the archive published under id. It is called once the
// archive has been delivered.
func (s *Store) Release(id string) error {
	key, err := uuid.Parse(id)
	if err != nil {
		return apperrors.NewRetrievalError(id, "malformed artifact id")
	}

	s.mu.Lock()
	e, ok := s.index[key]
	delete(s.index, key)
	s.mu.Unlock()

	if !ok {
		return apperrors.NewRetrievalError(id, "no such artifact")
	}
	return s.remove(key, e)
}

// Sweep removes every archive older than the TTL at now and returns how many
// were removed.
func (s *Store) Sweep(now time.Time) int {
	s.mu.Lock()
	stale := make(map[uuid.UUID]entry)
	for id, e := range s.index {
		if s.expired(e, now) {
			stale[id] = e
			delete(s.index, id)
		}
	}
	s.mu.Unlock()

	for id, e := range stale {
		_ = s.remove(id, e)
	}
	if len(stale) > 0 {
		output.Debug("swept expired archives", "count", len(stale))
	}
	return len(stale)
}

// Run sweeps expired archives every interval until ctx is cancelled.
func (s *Store) Run(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.Sweep(s.now())
		}
	}
}

// Len returns the number of retrievable archives.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.index)
}

// Close removes every remaining archive and workspace.
func (s *Store) Close() error {
	s.mu.Lock()
	s.index = make(map[uuid.UUID]entry)
	s.mu.Unlock()

	var errs []string
	for _, dir := range []string{WorkDir, ArchiveDir} {
		if err := s.fs.RemoveAll(filepath.Join(s.root, dir)); err != nil {
			errs = append(errs, err.Error())
		}
	}
	if len(errs) > 0 {
		return fmt.Errorf("closing artifact store: %s", strings.Join(errs, "; "))
	}
	return nil
}

func (s *Store) expired(e entry, now time.Time) bool {
	return now.Sub(e.created) > s.ttl
}

func (s *Store) remove(id uuid.UUID, e entry) error {
	if err := s.fs.Remove(e.path); err != nil && !os.IsNotExist(err) {
		output.Warn("removing archive", "id", id.String(), "err", err)
		return fmt.Errorf("removing archive %s: %w", id, err)
	}
	return nil
}

func (s *Store) workspacePath(id uuid.UUID) string {
	return filepath.Join(s.root, WorkDir, id.String())
}

func (s *Store) archivePath(id uuid.UUID) string {
	return filepath.Join(s.root, ArchiveDir, id.String()+archiveExt)
}

var _ io.ReadSeekCloser = (*Artifact)(nil)
