package services

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/dmitrijs2005/letshang/internal/common"
	"github.com/dmitrijs2005/letshang/internal/logging"
	"github.com/dmitrijs2005/letshang/internal/models"
	"github.com/dmitrijs2005/letshang/internal/objecturl"
	"github.com/dmitrijs2005/letshang/internal/repositories/images"
	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"
)

// AcceptedImageTypes lists the MIME types an upload may have.
var AcceptedImageTypes = []string{"image/png", "image/jpeg", "image/gif", "image/webp"}

// DetectImage sniffs payload and returns its MIME type, or
// common.ErrUnsupportedImage when it is not an accepted image.
func DetectImage(payload []byte) (string, error) {
	mt := mimetype.Detect(payload)
	for _, accepted := range AcceptedImageTypes {
		if mt.Is(accepted) {
			return accepted, nil
		}
	}
	return "", fmt.Errorf("%w: %s", common.ErrUnsupportedImage, mt.String())
}

type blobKey struct {
	keyspace models.Keyspace
	id       string
}

// ImageService is the blob store. Display URLs it mints are cached per id
// and released on Delete or ReleaseAll; nobody else revokes them.
type ImageService struct {
	repos  map[models.Keyspace]images.Repository
	minter objecturl.Minter
	log    logging.Logger
	now    func() time.Time

	// keys serialises Resolve and Delete of the same blob.
	keys *keyedMutex

	mu   sync.Mutex
	urls map[blobKey]string
}

func NewImageService(flyers, backgrounds images.Repository, minter objecturl.Minter, log logging.Logger) *ImageService {
	return &ImageService{
		repos: map[models.Keyspace]images.Repository{
			models.KeyspaceFlyer:      flyers,
			models.KeyspaceBackground: backgrounds,
		},
		minter: minter,
		log:    log.With("component", "images"),
		now:    time.Now,
		keys:   newKeyedMutex(),
		urls:   make(map[blobKey]string),
	}
}

func (s *ImageService) repo(keyspace models.Keyspace) (images.Repository, error) {
	r, ok := s.repos[keyspace]
	if !ok || r == nil {
		return nil, fmt.Errorf("unknown keyspace %q", keyspace)
	}
	return r, nil
}

func (k blobKey) String() string {
	return string(k.keyspace) + "/" + k.id
}

// Save stores payload under a fresh id in keyspace and returns the id.
func (s *ImageService) Save(ctx context.Context, keyspace models.Keyspace, payload []byte, filename string) (string, error) {
	r, err := s.repo(keyspace)
	if err != nil {
		return "", err
	}
	if _, err := DetectImage(payload); err != nil {
		return "", err
	}

	rec := &models.ImageRecord{
		ID:         uuid.NewString(),
		Payload:    payload,
		Filename:   filename,
		UploadedAt: s.now().UTC(),
	}
	if err := r.Insert(ctx, rec); err != nil {
		s.log.Error(ctx, "image save failed", "keyspace", keyspace, "err", err)
		return "", storageFault("save image", err)
	}
	s.log.Debug(ctx, "image saved", "keyspace", keyspace, "id", rec.ID, "size", len(payload))
	return rec.ID, nil
}

// Resolve returns a display URL for id, or "" when nothing is stored.
// The same id always resolves to the same URL until it is deleted or
// released.
func (s *ImageService) Resolve(ctx context.Context, keyspace models.Keyspace, id string) (string, error) {
	r, err := s.repo(keyspace)
	if err != nil {
		return "", err
	}
	if id == "" {
		return "", nil
	}
	key := blobKey{keyspace, id}

	if u, ok := s.cached(key); ok {
		return u, nil
	}

	unlock := s.keys.Lock(key.String())
	defer unlock()

	if u, ok := s.cached(key); ok {
		return u, nil
	}
	exists, err := r.Exists(ctx, id)
	if err != nil {
		return "", storageFault("resolve image", err)
	}
	if !exists {
		return "", nil
	}

	u, err := s.minter.Mint(ctx, keyspace, id)
	if err != nil {
		return "", storageFault("mint url", err)
	}
	s.mu.Lock()
	s.urls[key] = u
	s.mu.Unlock()
	return u, nil
}

func (s *ImageService) cached(key blobKey) (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.urls[key]
	return u, ok
}

// Load returns the stored record behind id.
func (s *ImageService) Load(ctx context.Context, keyspace models.Keyspace, id string) (*models.ImageRecord, error) {
	r, err := s.repo(keyspace)
	if err != nil {
		return nil, err
	}
	rec, err := r.Get(ctx, id)
	if err != nil {
		return nil, storageFault("load image", err)
	}
	return rec, nil
}

// Delete removes the record and releases its URL. Missing ids are a no-op.
func (s *ImageService) Delete(ctx context.Context, keyspace models.Keyspace, id string) error {
	r, err := s.repo(keyspace)
	if err != nil {
		return err
	}
	key := blobKey{keyspace, id}
	unlock := s.keys.Lock(key.String())
	defer unlock()

	if err := r.Delete(ctx, id); err != nil {
		return storageFault("delete image", err)
	}

	s.mu.Lock()
	if u, ok := s.urls[key]; ok {
		s.minter.Revoke(u)
		delete(s.urls, key)
	}
	s.mu.Unlock()
	return nil
}

// ReleaseAll revokes every cached URL. Stored images are untouched.
func (s *ImageService) ReleaseAll() {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.urls {
		s.minter.Revoke(u)
	}
	s.urls = make(map[blobKey]string)
}
