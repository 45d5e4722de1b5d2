// Producthunt Replica - Product Listing and Submission Site
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/joseluisng17/producthunt-next-replic

package products

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/joseluisng17/producthunt-next-replic/internal/auth"
	"github.com/joseluisng17/producthunt-next-replic/internal/events"
	"github.com/joseluisng17/producthunt-next-replic/internal/forms"
	"github.com/joseluisng17/producthunt-next-replic/internal/logging"
	"github.com/joseluisng17/producthunt-next-replic/internal/metrics"
	"github.com/joseluisng17/producthunt-next-replic/internal/navigation"
	"github.com/joseluisng17/producthunt-next-replic/internal/validation"
)

// FormName is the metrics and URL name of the form.
const FormName = "nuevo-producto"

// DefaultCollection receives new products.
const DefaultCollection = "productos"

// Workflow outcomes recorded in metrics.
const (
	OutcomeCreated      = "created"
	OutcomeRedirected   = "redirected"
	OutcomeNoImage      = "no_image"
	OutcomeUploadFailed = "upload_failed"
	OutcomeInsertFailed = "insert_failed"
)

// AuthState streams the user of a browser session.
type AuthState interface {
	SubscribeAuthState(ctx context.Context, sessionID string, cb func(*auth.User)) (auth.Unsubscribe, error)
}

// Uploader stores a selected file and returns its URL.
type Uploader interface {
	Upload(ctx context.Context, f *forms.SelectedFile) (string, error)
}

// Inserter adds a document to a collection.
type Inserter interface {
	Insert(ctx context.Context, collection string, record interface{}) (string, error)
}

// Publisher announces created products. Optional.
type Publisher interface {
	Publish(ctx context.Context, topic string, payload interface{}) error
}

// Config tunes a Workflow.
type Config struct {
	// Collection defaults to DefaultCollection.
	Collection string

	// RequireImage rejects submissions without a selected file. When false
	// the record is stored with an empty urlimagen.
	RequireImage bool

	// StepTimeout bounds the upload and the insert separately. Zero means
	// no deadline beyond the caller's context.
	StepTimeout time.Duration

	// Now defaults to time.Now.
	Now func() time.Time
}

// Result describes a submission that did not fail.
type Result struct {
	// Redirected is set when there was no user and the client was sent to
	// the login page instead.
	Redirected bool

	ProductID string
	Record    *Record
}

// Workflow owns one new-product form for the lifetime of a page.
type Workflow struct {
	auth      AuthState
	uploader  Uploader
	db        Inserter
	nav       navigation.Navigator
	publisher Publisher
	cfg       Config

	engine *forms.Engine
	result Result

	// set from the auth-state callback, which runs on a bus goroutine
	mu          sync.Mutex
	user        *auth.User
	unsubscribe auth.Unsubscribe
	mounting    bool
}

// New returns a workflow with an empty product form.
func New(a AuthState, uploader Uploader, db Inserter, nav navigation.Navigator, cfg Config) *Workflow {
	if cfg.Collection == "" {
		cfg.Collection = DefaultCollection
	}
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
	w := &Workflow{auth: a, uploader: uploader, db: db, nav: nav, cfg: cfg}
	w.engine = forms.New(validation.ProductFields(), validation.ProductRules, w.create)
	w.engine.SetNormalizer(validation.NormalizeProduct)
	return w
}

// SetPublisher sets where products.created events go.
func (w *Workflow) SetPublisher(p Publisher) {
	w.publisher = p
}

// Engine exposes the form for change, blur and file selection.
func (w *Workflow) Engine() *forms.Engine {
	return w.engine
}

// Mount subscribes to the auth state of sessionID. The current state is
// applied before Mount returns, so an absent session has already navigated
// to /login. Pair every successful Mount with Unmount.
func (w *Workflow) Mount(ctx context.Context, sessionID string) error {
	w.mu.Lock()
	if w.unsubscribe != nil || w.mounting {
		w.mu.Unlock()
		return ErrAlreadyMounted
	}
	w.mounting = true
	w.mu.Unlock()

	unsubscribe, err := w.auth.SubscribeAuthState(ctx, sessionID, w.onAuthState)

	w.mu.Lock()
	w.mounting = false
	if err == nil {
		w.unsubscribe = unsubscribe
	}
	w.mu.Unlock()
	return err
}

// Unmount releases the auth-state subscription. Safe to call more than once
// and without Mount.
func (w *Workflow) Unmount() {
	w.mu.Lock()
	unsubscribe := w.unsubscribe
	w.unsubscribe = nil
	w.mu.Unlock()

	if unsubscribe != nil {
		unsubscribe()
	}
}

func (w *Workflow) onAuthState(u *auth.User) {
	w.mu.Lock()
	w.user = u
	w.mu.Unlock()

	if u == nil {
		w.nav.NavigateTo(navigation.PathLogin)
	}
}

// User returns the user the workflow currently sees, or nil.
func (w *Workflow) User() *auth.User {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.user
}

// Submit validates the form and runs the creation steps. It returns
// forms.ErrInvalid for field errors, ErrImageRequired, a
// *storage.UploadError or a *PersistError; the last three are also stored as
// the form error.
func (w *Workflow) Submit(ctx context.Context, ev forms.SubmitEvent) (Result, error) {
	w.result = Result{}
	err := w.engine.HandleSubmit(ctx, ev)
	metrics.RecordFormSubmission(FormName, !errors.Is(err, forms.ErrInvalid))
	return w.result, err
}

func (w *Workflow) create(ctx context.Context) error {
	log := logging.Ctx(ctx)

	user := w.User()
	if user == nil {
		w.nav.NavigateTo(navigation.PathLogin)
		w.result = Result{Redirected: true}
		metrics.RecordProductWorkflow(OutcomeRedirected)
		return nil
	}

	imageURL, err := w.uploadImage(ctx)
	if err != nil {
		w.engine.SetFormError(FormMessage(err))
		log.Warn().Err(err).Str("user_id", user.ID).Msg("Product image upload failed")
		return err
	}

	record := NewRecord(w.engine.Values(), imageURL, user, w.cfg.Now())

	insertCtx, cancel := w.stepContext(ctx)
	id, err := w.db.Insert(insertCtx, w.cfg.Collection, record)
	cancel()
	if err != nil {
		err = &PersistError{Collection: w.cfg.Collection, Err: err}
		w.engine.SetFormError(FormMessage(err))
		metrics.RecordProductWorkflow(OutcomeInsertFailed)
		log.Error().Err(err).Str("user_id", user.ID).Msg("Product insert failed")
		return err
	}

	w.nav.NavigateTo(navigation.PathHome)
	w.result = Result{ProductID: id, Record: &record}
	metrics.RecordProductWorkflow(OutcomeCreated)
	log.Info().Str("product_id", id).Str("user_id", user.ID).Msg("Product created")

	w.announce(ctx, id, &record)
	return nil
}

func (w *Workflow) uploadImage(ctx context.Context) (string, error) {
	file := w.engine.File()
	if file == nil {
		if w.cfg.RequireImage {
			metrics.RecordProductWorkflow(OutcomeNoImage)
			return "", ErrImageRequired
		}
		return "", nil
	}

	uploadCtx, cancel := w.stepContext(ctx)
	defer cancel()
	url, err := w.uploader.Upload(uploadCtx, file)
	if err != nil {
		metrics.RecordProductWorkflow(OutcomeUploadFailed)
		return "", err
	}
	return url, nil
}

func (w *Workflow) stepContext(ctx context.Context) (context.Context, context.CancelFunc) {
	if w.cfg.StepTimeout > 0 {
		return context.WithTimeout(ctx, w.cfg.StepTimeout)
	}
	return context.WithCancel(ctx)
}

func (w *Workflow) announce(ctx context.Context, id string, record *Record) {
	if w.publisher == nil {
		return
	}
	ev := &events.ProductCreatedEvent{
		SchemaVersion: events.SchemaVersion,
		ProductID:     id,
		Collection:    w.cfg.Collection,
		Nombre:        record.Nombre,
		CreatorID:     record.Creador.ID,
		ImageURL:      record.URLImagen,
		Creado:        record.Creado,
		Timestamp:     time.Now().UTC(),
	}
	if err := w.publisher.Publish(ctx, events.TopicProductCreated, ev); err != nil {
		logging.Ctx(ctx).Warn().Err(err).Str("product_id", id).Msg("Failed to publish product event")
	}
}
