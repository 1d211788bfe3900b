package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/staffdesk/staffdesk-backend-go/internal/domain/announcement"
	"github.com/staffdesk/staffdesk-backend-go/internal/handler/http/response"
)

type AnnouncementHandler interface {
	Post(w http.ResponseWriter, r *http.Request)
	List(w http.ResponseWriter, r *http.Request)
	UnreadCount(w http.ResponseWriter, r *http.Request)
	MarkAllRead(w http.ResponseWriter, r *http.Request)
}

type announcementHandlerImpl struct {
	announcementService announcement.AnnouncementService
}

func NewAnnouncementHandler(announcementService announcement.AnnouncementService) AnnouncementHandler {
	return &announcementHandlerImpl{announcementService: announcementService}
}

// Post implements AnnouncementHandler.
func (h *announcementHandlerImpl) Post(w http.ResponseWriter, r *http.Request) {
	var req announcement.PostAnnouncementRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("Post announcement decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	announcementResponse, err := h.announcementService.Post(r.Context(), req)
	if err != nil {
		slog.Error("Post announcement service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Announcement posted successfully", announcementResponse)
}

// List implements AnnouncementHandler.
func (h *announcementHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	announcements, err := h.announcementService.ListRecent(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, announcements)
}

// UnreadCount implements AnnouncementHandler.
func (h *announcementHandlerImpl) UnreadCount(w http.ResponseWriter, r *http.Request) {
	countResponse, err := h.announcementService.UnreadCountForMe(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, countResponse)
}

// MarkAllRead implements AnnouncementHandler.
func (h *announcementHandlerImpl) MarkAllRead(w http.ResponseWriter, r *http.Request) {
	markResponse, err := h.announcementService.MarkAllReadForMe(r.Context())
	if err != nil {
		slog.Error("Mark announcements read service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Announcements marked as read", markResponse)
}
