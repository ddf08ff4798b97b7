package composer

import (
	"context"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/jonathanTyoung/wayfare-client/internal/geocode"
	"github.com/jonathanTyoung/wayfare-client/internal/schema"
	"github.com/jonathanTyoung/wayfare-client/internal/session"
	"github.com/jonathanTyoung/wayfare-client/internal/validation"
)

// State is the coordinator's position in the submission pipeline.
type State int

const (
	StateIdle State = iota
	StateValidating
	StateSubmitting
	StateUploadingPhotos
	StateDone
	StateDoneWithWarning
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateValidating:
		return "validating"
	case StateSubmitting:
		return "submitting"
	case StateUploadingPhotos:
		return "uploading photos"
	case StateDone:
		return "done"
	case StateDoneWithWarning:
		return "done with warning"
	default:
		return "unknown"
	}
}

// JournalService is the slice of the journal API the coordinator drives.
type JournalService interface {
	CreatePost(ctx context.Context, req *schema.CreatePostRequest) (*schema.Post, error)
	UpdatePost(ctx context.Context, postID int64, req *schema.CreatePostRequest) (*schema.Post, error)
	PhotoUploader
}

// Options configures a Coordinator for one hosting form.
type Options struct {
	// Navigate is invoked with Destination exactly once per successful
	// submission.
	Navigate func(destination string)
	// OnSuccess is invoked after navigation on terminal success paths.
	OnSuccess func()
	// Destination is the return destination after a submission.
	Destination string
	// EditPostID switches the coordinator to edit mode when non-zero.
	EditPostID int64
}

// Coordinator orchestrates a submission: validate, write the post,
// upload any attached photos, then navigate. Remote calls within one
// submission are strictly sequential; the photo phase never starts
// before the post write has resolved.
type Coordinator struct {
	logger  *zap.SugaredLogger
	journal JournalService
	sess    *session.Session
	opts    Options

	mu    sync.Mutex
	state State
	busy  bool
}

// NewCoordinator creates a coordinator bound to one form instance.
func NewCoordinator(logger *zap.SugaredLogger, journal JournalService, sess *session.Session, opts Options) *Coordinator {
	return &Coordinator{
		logger:  logger,
		journal: journal,
		sess:    sess,
		opts:    opts,
		state:   StateIdle,
	}
}

// Busy reports whether a submission is in flight. The hosting form uses
// this to disable its submit control.
func (c *Coordinator) Busy() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.busy
}

// State returns the current pipeline state.
func (c *Coordinator) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Submit runs the full pipeline and returns a tagged outcome. Every
// failure path is an outcome, never a panic or a stray error: the form
// either stays open with a message or the submission completes. If ctx
// is canceled (host torn down) the completion callbacks are suppressed.
func (c *Coordinator) Submit(ctx context.Context, draft *DraftPost, confirmed *geocode.Suggestion, photos *PhotoBuffer) Outcome {
	c.mu.Lock()
	if c.busy {
		c.mu.Unlock()
		return Outcome{Kind: OutcomeValidationError, Message: "a submission is already in progress"}
	}
	c.busy = true
	c.state = StateValidating
	c.mu.Unlock()

	defer func() {
		c.mu.Lock()
		c.busy = false
		c.mu.Unlock()
	}()

	submissionCtr.Inc()

	if err := c.sess.Valid(time.Now()); err != nil {
		c.setState(StateIdle)
		submissionFailureCtr.Inc()
		return Outcome{Kind: OutcomeNetworkError, Message: "session expired, sign in again"}
	}

	req, message := c.buildRequest(draft, confirmed)
	if message != "" {
		c.setState(StateIdle)
		validationFailureCtr.Inc()
		return Outcome{Kind: OutcomeValidationError, Message: message}
	}

	c.setState(StateSubmitting)
	// The remote phases run on a detached context: tearing down the host
	// must not abandon a post write mid-flight. The host ctx only decides
	// whether the completion callbacks still fire.
	remoteCtx := context.WithoutCancel(ctx)
	post, err := c.writePost(remoteCtx, req)
	if err != nil {
		c.logger.Warnw("Post write failed", "error", err)
		c.setState(StateIdle)
		submissionFailureCtr.Inc()
		return Outcome{Kind: OutcomeNetworkError, Message: err.Error()}
	}
	if post == nil || post.ID == 0 {
		// The remote call reported success but returned nothing usable.
		// Photos cannot be attached without an identifier, so this is
		// fatal despite the 2xx.
		c.logger.Errorw("Post write returned no post ID")
		c.setState(StateIdle)
		submissionFailureCtr.Inc()
		return Outcome{Kind: OutcomeNetworkError, Message: "missing post ID"}
	}

	outcome := Outcome{Kind: OutcomeSuccess, PostID: post.ID}
	if photos != nil && photos.Len() > 0 {
		c.setState(StateUploadingPhotos)
		if _, err := photos.Consume(remoteCtx, post.ID, c.journal); err != nil {
			// The post is already committed; report the upload as a
			// warning and complete anyway.
			c.logger.Warnw("Photo upload failed", "post_id", post.ID, "error", err)
			photoWarningCtr.Inc()
			outcome = Outcome{Kind: OutcomePartialSuccess, PostID: post.ID, PhotoUploadError: err}
			c.setState(StateDoneWithWarning)
		} else {
			c.setState(StateDone)
		}
	} else {
		c.setState(StateDone)
	}

	if ctx.Err() != nil {
		c.logger.Debugw("Host torn down mid-submission, suppressing callbacks", "post_id", post.ID)
		return outcome
	}

	if c.opts.Navigate != nil {
		c.opts.Navigate(c.opts.Destination)
	}
	if c.opts.OnSuccess != nil {
		c.opts.OnSuccess()
	}
	return outcome
}

// writePost runs the create-or-update phase.
func (c *Coordinator) writePost(ctx context.Context, req *schema.CreatePostRequest) (*schema.Post, error) {
	if c.opts.EditPostID != 0 {
		return c.journal.UpdatePost(ctx, c.opts.EditPostID, req)
	}
	return c.journal.CreatePost(ctx, req)
}

// buildRequest validates the draft and assembles the wire payload. It
// returns a non-empty message when the draft is rejected.
func (c *Coordinator) buildRequest(draft *DraftPost, confirmed *geocode.Suggestion) (*schema.CreatePostRequest, string) {
	locationText := strings.TrimSpace(draft.LocationText)

	req := &schema.CreatePostRequest{
		Title:            draft.Title,
		ShortDescription: draft.ShortDescription,
		LongDescription:  draft.LongDescription,
		CreatedAt:        time.Now().UnixMilli(),
		Tags:             draft.Tags(),
	}
	if draft.CategoryID != 0 {
		req.Categories = []int64{draft.CategoryID}
	}

	switch {
	case locationText == "":
		// Location is optional; no coordinate claim is made.
		req.Location = "Not specified"
	case confirmed == nil || confirmed.Name != draft.LocationText:
		// Free text without a matching confirmed pick is not allowed to
		// become a coordinate claim. A stale pick counts as no pick.
		return nil, "pick a location from the suggestions"
	default:
		lat, lng := confirmed.Lat, confirmed.Lng
		req.Location = confirmed.Name
		req.Latitude = &lat
		req.Longitude = &lng
	}

	if err := validation.ValidateAndSanitizeStruct(req); err != nil {
		return nil, validation.FirstErrorMessage(err)
	}
	return req, ""
}

func (c *Coordinator) setState(next State) {
	c.mu.Lock()
	previous := c.state
	c.state = next
	c.mu.Unlock()

	c.logger.Debugw("Submission state changed", "from", previous.String(), "to", next.String())
}
