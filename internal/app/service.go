package app

import (
	"context"
	"log"
	"net/http"
	"regexp"
	"strings"
	"time"

	"covenant/api/internal/archive"
	"covenant/api/internal/config"
	"covenant/api/internal/legal"
	"covenant/api/internal/store"
	"covenant/api/internal/util"
)

type dataStore interface {
	Ping(context.Context) error
	EnsureUser(context.Context, string, string) (store.User, error)
	InsertDocument(context.Context, store.Document) error
	GetDocument(context.Context, string) (store.Document, error)
	GetDocumentBySlug(context.Context, string) (store.Document, error)
	ListDocuments(context.Context) ([]store.Document, error)
	ListRequiredDocuments(context.Context) ([]store.Document, error)
	UpdateDocument(context.Context, string, string, bool) error
	DeleteDocument(context.Context, string) error
	InsertSection(context.Context, store.Section) (store.Section, error)
	GetSection(context.Context, int64) (store.Section, error)
	ListSections(context.Context, string) ([]store.Section, error)
	UpdateSection(context.Context, int64, string, string, int) error
	DeleteSection(context.Context, int64) error
	LatestVersion(context.Context, string) (*store.Version, error)
	GetVersion(context.Context, int64) (store.Version, error)
	ListVersions(context.Context, string) ([]store.Version, error)
	PublishVersion(context.Context, store.Version, int64) (store.Version, error)
	HasAcceptance(context.Context, string, int64) (bool, error)
	RecordAcceptance(context.Context, store.Acceptance) (store.Acceptance, bool, error)
}

// gateCache is the optional compliance verdict cache. Errors from it are
// logged and swallowed; the postgres check is always the source of truth.
type gateCache interface {
	IsCompliant(ctx context.Context, userID string) (bool, error)
	MarkCompliant(ctx context.Context, userID string, ttl time.Duration) error
	Invalidate(ctx context.Context, userID string) error
	Reset(ctx context.Context) error
}

type Service struct {
	cfg     config.Config
	store   dataStore
	cache   gateCache
	archive *archive.Archive
	now     func() time.Time
}

func New(cfg config.Config, dataStore dataStore) *Service {
	return &Service{cfg: cfg, store: dataStore, now: time.Now}
}

// NewWithInfra wires the optional compliance cache and snapshot archive.
// Either may be nil.
func NewWithInfra(cfg config.Config, dataStore dataStore, cache gateCache, snapshotArchive *archive.Archive) *Service {
	return &Service{cfg: cfg, store: dataStore, cache: cache, archive: snapshotArchive, now: time.Now}
}

func (s *Service) Ping(ctx context.Context) error {
	return s.store.Ping(ctx)
}

var slugPattern = regexp.MustCompile(`^[a-z0-9]+(?:-[a-z0-9]+)*$`)

func (s *Service) CreateDocument(ctx context.Context, humanName, slug string, isRequired bool) (store.Document, error) {
	humanName = strings.TrimSpace(humanName)
	slug = strings.TrimSpace(slug)
	if humanName == "" {
		return store.Document{}, domainError(http.StatusBadRequest, "INVALID_INPUT", "humanName is required", nil)
	}
	if !slugPattern.MatchString(slug) {
		return store.Document{}, domainError(http.StatusBadRequest, "INVALID_SLUG", "slug must be lowercase letters, digits and hyphens", nil)
	}

	item := store.Document{
		ID:         util.NewID("doc"),
		HumanName:  humanName,
		Slug:       slug,
		IsRequired: isRequired,
	}
	if err := s.store.InsertDocument(ctx, item); err != nil {
		if store.IsUniqueViolation(err) {
			return store.Document{}, domainError(http.StatusConflict, "SLUG_TAKEN", "A document with this slug already exists", nil)
		}
		return store.Document{}, err
	}
	return item, nil
}

func (s *Service) GetDocumentBySlug(ctx context.Context, slug string) (store.Document, error) {
	return s.store.GetDocumentBySlug(ctx, slug)
}

func (s *Service) ListDocuments(ctx context.Context) ([]store.Document, error) {
	return s.store.ListDocuments(ctx)
}

func (s *Service) UpdateDocument(ctx context.Context, documentID, humanName string, isRequired bool) error {
	humanName = strings.TrimSpace(humanName)
	if humanName == "" {
		return domainError(http.StatusBadRequest, "INVALID_INPUT", "humanName is required", nil)
	}

	doc, err := s.store.GetDocument(ctx, documentID)
	if err != nil {
		return err
	}
	if err := s.store.UpdateDocument(ctx, documentID, humanName, isRequired); err != nil {
		return err
	}

	// Flipping the required flag changes the set of documents compliance is
	// judged against, so cached verdicts are stale in either direction.
	if doc.IsRequired != isRequired && s.cache != nil {
		if err := s.cache.Reset(ctx); err != nil {
			log.Printf("gatecache: reset after required flag change on %s: %v", doc.Slug, err)
		}
	}
	return nil
}

func (s *Service) DeleteDocument(ctx context.Context, documentID string) error {
	return s.store.DeleteDocument(ctx, documentID)
}

func (s *Service) AddSection(ctx context.Context, documentID, heading, body string, sortOrder int) (store.Section, error) {
	return s.store.InsertSection(ctx, store.Section{
		DocumentID: documentID,
		Heading:    heading,
		Body:       body,
		SortOrder:  sortOrder,
	})
}

func (s *Service) GetSection(ctx context.Context, sectionID int64) (store.Section, error) {
	return s.store.GetSection(ctx, sectionID)
}

func (s *Service) ListSections(ctx context.Context, documentID string) ([]store.Section, error) {
	return s.store.ListSections(ctx, documentID)
}

func (s *Service) UpdateSection(ctx context.Context, sectionID int64, heading, body string, sortOrder int) error {
	return s.store.UpdateSection(ctx, sectionID, heading, body, sortOrder)
}

func (s *Service) DeleteSection(ctx context.Context, sectionID int64) error {
	return s.store.DeleteSection(ctx, sectionID)
}

// BuildCurrentSnapshot renders the document's live sections into the
// canonical text that would be stored if a version were published now.
func (s *Service) BuildCurrentSnapshot(ctx context.Context, documentID string) (string, error) {
	sections, err := s.store.ListSections(ctx, documentID)
	if err != nil {
		return "", err
	}
	return legal.BuildSnapshot(sections), nil
}

// PublishNewVersion appends a new immutable version for the document:
// snapshot the live sections, score the change against the latest version,
// derive the next label and persist the record with its integrity hash.
// Store failures propagate unmodified.
func (s *Service) PublishNewVersion(ctx context.Context, documentID string) (store.Version, error) {
	doc, err := s.store.GetDocument(ctx, documentID)
	if err != nil {
		return store.Version{}, err
	}

	snapshot, err := s.BuildCurrentSnapshot(ctx, documentID)
	if err != nil {
		return store.Version{}, err
	}

	prev, err := s.store.LatestVersion(ctx, documentID)
	if err != nil {
		return store.Version{}, err
	}

	// First publish always lands on 1.0.0 via the no-previous rule; the
	// 100.0 is informational in that branch.
	diffPercent := 100.0
	prevLabel := ""
	var expectedPrevID int64
	if prev != nil {
		diffPercent = legal.DiffPercent(prev.ContentSnapshot, snapshot)
		prevLabel = prev.Label
		expectedPrevID = prev.ID
	}

	label := legal.NextLabel(prevLabel, diffPercent)
	now := s.now().UTC()
	version := store.Version{
		DocumentID:      documentID,
		Label:           label,
		ContentSnapshot: snapshot,
		CreatedAt:       now,
		PublishedAt:     now,
		Hash:            legal.VersionHash(doc.ID, doc.Slug, label, snapshot, now),
	}

	created, err := s.store.PublishVersion(ctx, version, expectedPrevID)
	if err != nil {
		return store.Version{}, err
	}

	if s.cache != nil {
		if err := s.cache.Reset(ctx); err != nil {
			log.Printf("gatecache: reset after publish of %s: %v", doc.Slug, err)
		}
	}
	if s.archive != nil {
		go func(slug string, v store.Version) {
			archiveCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
			defer cancel()
			if err := s.archive.StoreSnapshot(archiveCtx, slug, v.Label, v.ContentSnapshot, v.Hash); err != nil {
				log.Printf("archive: snapshot %s v%s: %v", slug, v.Label, err)
			}
		}(doc.Slug, created)
	}

	return created, nil
}

// ReconcileDocument is the administrative trigger called after section
// edits. It publishes only when there is something new to record: never
// for a sectionless document, always for the first version, and otherwise
// only when the rebuilt snapshot differs byte-for-byte from the latest
// stored one. The returned version is nil when nothing was published.
func (s *Service) ReconcileDocument(ctx context.Context, documentID string) (*store.Version, error) {
	sections, err := s.store.ListSections(ctx, documentID)
	if err != nil {
		return nil, err
	}
	if len(sections) == 0 {
		return nil, nil
	}

	latest, err := s.store.LatestVersion(ctx, documentID)
	if err != nil {
		return nil, err
	}
	if latest != nil && legal.BuildSnapshot(sections) == latest.ContentSnapshot {
		return nil, nil
	}

	version, err := s.PublishNewVersion(ctx, documentID)
	if err != nil {
		return nil, err
	}
	return &version, nil
}

// CheckUserLegalCompliance returns whether the user has accepted the
// latest version of every required document, plus the latest versions
// still missing an acceptance, in required-document order. Documents with
// no versions yet have nothing to enforce and are skipped.
func (s *Service) CheckUserLegalCompliance(ctx context.Context, userID string) (bool, []store.Version, error) {
	if s.cache != nil {
		cached, err := s.cache.IsCompliant(ctx, userID)
		if err != nil {
			log.Printf("gatecache: lookup for %s: %v", userID, err)
		} else if cached {
			return true, []store.Version{}, nil
		}
	}

	documents, err := s.store.ListRequiredDocuments(ctx)
	if err != nil {
		return false, nil, err
	}

	missing := make([]store.Version, 0)
	for _, doc := range documents {
		current, err := s.store.LatestVersion(ctx, doc.ID)
		if err != nil {
			return false, nil, err
		}
		if current == nil {
			continue
		}
		accepted, err := s.store.HasAcceptance(ctx, userID, current.ID)
		if err != nil {
			return false, nil, err
		}
		if !accepted {
			missing = append(missing, *current)
		}
	}

	compliant := len(missing) == 0
	if compliant && s.cache != nil {
		if err := s.cache.MarkCompliant(ctx, userID, s.cfg.ComplianceCacheTTL); err != nil {
			log.Printf("gatecache: mark %s compliant: %v", userID, err)
		}
	}
	return compliant, missing, nil
}

// RecordAcceptance is an idempotent get-or-create of the user's acceptance
// of one version. The version's hash is pinned into the record so later
// drift is detectable. Repeat calls return the stored row unchanged.
func (s *Service) RecordAcceptance(ctx context.Context, userID string, versionID int64, ipAddress, userAgent string) (store.Acceptance, error) {
	if _, err := s.store.EnsureUser(ctx, userID, ""); err != nil {
		return store.Acceptance{}, err
	}

	version, err := s.store.GetVersion(ctx, versionID)
	if err != nil {
		return store.Acceptance{}, err
	}

	acceptance, created, err := s.store.RecordAcceptance(ctx, store.Acceptance{
		UserID:              userID,
		VersionID:           version.ID,
		VersionHashSnapshot: version.Hash,
		AcceptedAt:          s.now().UTC(),
		IPAddress:           ipAddress,
		UserAgent:           userAgent,
	})
	if err != nil {
		return store.Acceptance{}, err
	}

	if created && s.cache != nil {
		if err := s.cache.Invalidate(ctx, userID); err != nil {
			log.Printf("gatecache: invalidate %s: %v", userID, err)
		}
	}
	return acceptance, nil
}

// CurrentVersion resolves a document by slug and returns its latest
// version, nil when none has been published yet. Unknown slugs surface as
// the store's not-found error.
func (s *Service) CurrentVersion(ctx context.Context, slug string) (store.Document, *store.Version, error) {
	doc, err := s.store.GetDocumentBySlug(ctx, slug)
	if err != nil {
		return store.Document{}, nil, err
	}
	current, err := s.store.LatestVersion(ctx, doc.ID)
	if err != nil {
		return store.Document{}, nil, err
	}
	return doc, current, nil
}
