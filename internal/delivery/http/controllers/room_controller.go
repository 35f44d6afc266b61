package controllers

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	qrcode "github.com/skip2/go-qrcode"

	"secretsanta/internal/delivery/http/helpers"
	"secretsanta/internal/delivery/http/middleware"
	"secretsanta/internal/domain"
)

const (
	maxParticipants = 30
	qrSize          = 256
)

// CreateRoomRequest is the request body for POST /rooms.
type CreateRoomRequest struct {
	Names []string `json:"names"`
}

// Validate implements Validator. The same invariants are re-checked by the
// service before anything is persisted; this produces the user-facing
// messages.
func (c CreateRoomRequest) Validate() []string {
	var errs []string
	seen := make(map[string]struct{}, len(c.Names))
	count := 0
	for _, name := range c.Names {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		count++
		folded := strings.ToLower(name)
		if _, ok := seen[folded]; ok {
			errs = append(errs, "names must be distinct")
			break
		}
		seen[folded] = struct{}{}
	}
	if count < 2 {
		errs = append(errs, "at least two names are required")
	}
	if count > maxParticipants {
		errs = append(errs, "at most 30 names are allowed")
	}
	return errs
}

// ParticipantCreated is one participant in the creation response, secret key
// included.
type ParticipantCreated struct {
	Name       string `json:"name"`
	Key        string `json:"key"`
	AssignedTo string `json:"assigned_to"`
	GiftNumber int    `json:"gift_number"`
	RevealPath string `json:"reveal_path"`
}

// RoomCreatedResponse is the response body for POST /rooms. This is the only
// response that ever carries the creator key.
type RoomCreatedResponse struct {
	Code         string               `json:"code"`
	CreatorKey   string               `json:"creator_key"`
	CreatedAt    time.Time            `json:"created_at"`
	Participants []ParticipantCreated `json:"participants"`
}

// ShareLink is one participant's hand-out link in the room-by-code response.
type ShareLink struct {
	Name       string `json:"name"`
	Key        string `json:"key"`
	RevealPath string `json:"reveal_path"`
}

// RoomShareResponse is the response body for GET /rooms/{code}. It exists so
// the creator can re-open the share page; assignments and the creator key are
// not included.
type RoomShareResponse struct {
	Code         string      `json:"code"`
	CreatedAt    time.Time   `json:"created_at"`
	Participants []ShareLink `json:"participants"`
}

// AssignmentView is one giver/receiver pair in the creator reveal.
type AssignmentView struct {
	Name       string `json:"name"`
	AssignedTo string `json:"assigned_to"`
	GiftNumber int    `json:"gift_number"`
}

// CreatorRevealResponse is the response body for GET /reveal/creator/{key}.
type CreatorRevealResponse struct {
	Code        string           `json:"code"`
	CreatedAt   time.Time        `json:"created_at"`
	Assignments []AssignmentView `json:"assignments"`
}

// ParticipantRevealResponse is the response body for
// GET /reveal/participant/{key}: the holder's own assignment plus the room's
// name list, which reveal UIs use as a decoy pool.
type ParticipantRevealResponse struct {
	RoomCode   string   `json:"room_code"`
	Name       string   `json:"name"`
	AssignedTo string   `json:"assigned_to"`
	GiftNumber int      `json:"gift_number"`
	Names      []string `json:"names"`
}

// RoomController handles room creation, lookups, and reveal endpoints.
type RoomController struct {
	Logger  *slog.Logger
	Service domain.RoomService
	BaseURL string
}

// NewRoomController creates a RoomController. baseURL is the public origin
// used to build absolute reveal URLs for QR codes.
func NewRoomController(logger *slog.Logger, svc domain.RoomService, baseURL string) *RoomController {
	return &RoomController{
		Logger:  logger,
		Service: svc,
		BaseURL: strings.TrimSuffix(baseURL, "/"),
	}
}

func revealPath(key string) string {
	return "/reveal/participant/" + key
}

// CreateRoom godoc
// @Summary Create a room
// @Description Assigns each name a gift recipient (never themselves) and a gift number, issues a room code, a creator key, and one secret key per participant, and persists the room. The creator key is returned only here, exactly once.
// @Tags rooms
// @Accept json
// @Produce json
// @Param body body CreateRoomRequest true "Participant names (2-30, distinct)"
// @Success 201 {object} helpers.APIResponse "data contains the created room with all keys"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /rooms [post]
func (c *RoomController) CreateRoom(w http.ResponseWriter, r *http.Request) {
	var req CreateRoomRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	room, err := c.Service.CreateRoom(r.Context(), req.Names)
	if err != nil {
		if errors.Is(err, domain.ErrTooFewParticipants) || errors.Is(err, domain.ErrDuplicateName) {
			helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, err.Error())
			return
		}
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, "internal error")
		return
	}
	middleware.CountRoomCreated()

	resp := RoomCreatedResponse{
		Code:         room.Code,
		CreatorKey:   room.CreatorKey,
		CreatedAt:    room.CreatedAt,
		Participants: make([]ParticipantCreated, len(room.Participants)),
	}
	for i, p := range room.Participants {
		resp.Participants[i] = ParticipantCreated{
			Name:       p.Name,
			Key:        p.Key,
			AssignedTo: p.AssignedTo,
			GiftNumber: p.GiftNumber,
			RevealPath: revealPath(p.Key),
		}
	}
	helpers.WriteJSONSuccess(w, http.StatusCreated, resp)
}

// GetRoomByCode godoc
// @Summary Get share links for a room
// @Description Looks up a room by its public code and returns each participant's reveal link. The creator key is never included; it cannot be re-derived from the code.
// @Tags rooms
// @Produce json
// @Param code path string true "Room code"
// @Success 200 {object} helpers.APIResponse "data contains the share links"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /rooms/{code} [get]
func (c *RoomController) GetRoomByCode(w http.ResponseWriter, r *http.Request) {
	room, err := c.Service.FindRoomByCode(r.Context(), r.PathValue("code"))
	if err != nil {
		c.writeLookupError(w, r, err)
		return
	}
	resp := RoomShareResponse{
		Code:         room.Code,
		CreatedAt:    room.CreatedAt,
		Participants: make([]ShareLink, len(room.Participants)),
	}
	for i, p := range room.Participants {
		resp.Participants[i] = ShareLink{
			Name:       p.Name,
			Key:        p.Key,
			RevealPath: revealPath(p.Key),
		}
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, resp)
}

// RevealByCreatorKey godoc
// @Summary Reveal all assignments
// @Description Resolves a creator key to the full room: every giver/receiver pair and gift number. Possession of the key is the only credential; treat it like a password.
// @Tags reveal
// @Produce json
// @Param key path string true "Creator key"
// @Success 200 {object} helpers.APIResponse "data contains every assignment"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /reveal/creator/{key} [get]
func (c *RoomController) RevealByCreatorKey(w http.ResponseWriter, r *http.Request) {
	room, err := c.Service.FindRoomByCreatorKey(r.Context(), r.PathValue("key"))
	if err != nil {
		c.writeLookupError(w, r, err)
		return
	}
	resp := CreatorRevealResponse{
		Code:        room.Code,
		CreatedAt:   room.CreatedAt,
		Assignments: make([]AssignmentView, len(room.Participants)),
	}
	for i, p := range room.Participants {
		resp.Assignments[i] = AssignmentView{
			Name:       p.Name,
			AssignedTo: p.AssignedTo,
			GiftNumber: p.GiftNumber,
		}
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, resp)
}

// RevealByParticipantKey godoc
// @Summary Reveal one assignment
// @Description Resolves a participant key to that participant's own assignment and gift number, plus the room's name list. Other participants' assignments and keys are never included.
// @Tags reveal
// @Produce json
// @Param key path string true "Participant key"
// @Success 200 {object} helpers.APIResponse "data contains the holder's assignment"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /reveal/participant/{key} [get]
func (c *RoomController) RevealByParticipantKey(w http.ResponseWriter, r *http.Request) {
	lookup, err := c.Service.FindParticipantByKey(r.Context(), r.PathValue("key"))
	if err != nil {
		c.writeLookupError(w, r, err)
		return
	}
	resp := ParticipantRevealResponse{
		RoomCode:   lookup.RoomCode,
		Name:       lookup.Participant.Name,
		AssignedTo: lookup.Participant.AssignedTo,
		GiftNumber: lookup.Participant.GiftNumber,
		Names:      lookup.Names,
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, resp)
}

// ParticipantQR godoc
// @Summary QR code for a participant's reveal link
// @Description Renders a PNG QR code of the given participant's reveal URL so the creator can hand links out in person.
// @Tags rooms
// @Produce png
// @Param code path string true "Room code"
// @Param name path string true "Participant name"
// @Success 200 {file} file "PNG image"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /rooms/{code}/participants/{name}/qr [get]
func (c *RoomController) ParticipantQR(w http.ResponseWriter, r *http.Request) {
	room, err := c.Service.FindRoomByCode(r.Context(), r.PathValue("code"))
	if err != nil {
		c.writeLookupError(w, r, err)
		return
	}
	name := r.PathValue("name")
	var key string
	for _, p := range room.Participants {
		if strings.EqualFold(p.Name, name) {
			key = p.Key
			break
		}
	}
	if key == "" {
		helpers.WriteJSONError(w, http.StatusNotFound, helpers.ErrCodeNotFound, "not found")
		return
	}
	png, err := qrcode.Encode(c.BaseURL+revealPath(key), qrcode.Medium, qrSize)
	if err != nil {
		c.Logger.ErrorContext(r.Context(), "qr encode failed", "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, "internal error")
		return
	}
	w.Header().Set("Content-Type", "image/png")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(png)
}

// writeLookupError maps a lookup failure to 404 or 500. A miss is always the
// same generic "not found": the response never hints whether a similar key
// exists.
func (c *RoomController) writeLookupError(w http.ResponseWriter, r *http.Request, err error) {
	if errors.Is(err, domain.ErrRoomNotFound) || errors.Is(err, domain.ErrParticipantNotFound) {
		helpers.WriteJSONError(w, http.StatusNotFound, helpers.ErrCodeNotFound, "not found")
		return
	}
	c.Logger.ErrorContext(r.Context(), "request failed", "path", middleware.RedactSecrets(r.URL.Path), "method", r.Method, "err", err)
	helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, "internal error")
}
