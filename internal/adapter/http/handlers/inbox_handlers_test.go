package handlers

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"testing"

	"github.com/Diilaye/batimo/internal/adapter/http/handlers/mocks"
	"github.com/Diilaye/batimo/internal/domain/entities"
	"github.com/Diilaye/batimo/internal/usecase"

	"github.com/gin-gonic/gin"
	"go.uber.org/mock/gomock"
)

func TestAdminHandler_ListAdmins(t *testing.T) {
	gin.SetMode(gin.TestMode)
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	uc := mocks.NewMockIAdminUseCase(ctrl)
	uc.EXPECT().List(gomock.Any()).Return([]entities.Admin{{ID: "admin-1", Email: "a@batimo.sn", PasswordHash: "hash"}}, nil)

	r := gin.New()
	r.GET("/api/admins", NewAdminHandler(uc).ListAdmins)
	w := doJSON(r, http.MethodGet, "/api/admins", "")

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	body := w.Body.String()
	if !strings.Contains(body, `"_id":"admin-1"`) || strings.Contains(body, "hash") {
		t.Fatalf("unexpected body: %s", body)
	}
}

func newMessageRouter(h *MessageHandler) *gin.Engine {
	r := gin.New()
	r.POST("/api/contact", h.SubmitContact)
	r.GET("/api/messages", h.ListMessages)
	r.GET("/api/messages/:id", h.GetMessage)
	r.PATCH("/api/messages/:id/read", h.MarkRead)
	r.DELETE("/api/messages/:id", h.DeleteMessage)
	return r
}

func TestMessageHandler(t *testing.T) {
	gin.SetMode(gin.TestMode)

	t.Run("submit contact", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockIMessageUseCase(ctrl)
		uc.EXPECT().Submit(gomock.Any(), usecase.MessageSubmission{Name: "Awa", Email: "awa@x.sn", Message: "Bonjour"}).
			Return(entities.ContactMessage{ID: "m-1"}, nil)

		w := doJSON(newMessageRouter(NewMessageHandler(uc)), http.MethodPost, "/api/contact",
			`{"name":"Awa","email":"awa@x.sn","message":"Bonjour"}`)
		if w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", w.Code)
		}
	})

	t.Run("submit invalid", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockIMessageUseCase(ctrl)
		uc.EXPECT().Submit(gomock.Any(), gomock.Any()).
			Return(entities.ContactMessage{}, &usecase.ValidationError{Message: "name, email and message are required"})

		w := doJSON(newMessageRouter(NewMessageHandler(uc)), http.MethodPost, "/api/contact", `{}`)
		if w.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", w.Code)
		}
	})

	t.Run("get missing", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockIMessageUseCase(ctrl)
		uc.EXPECT().GetByID(gomock.Any(), "nope").Return(entities.ContactMessage{}, usecase.ErrMessageNotFound)

		w := doJSON(newMessageRouter(NewMessageHandler(uc)), http.MethodGet, "/api/messages/nope", "")
		if w.Code != http.StatusNotFound {
			t.Fatalf("expected 404, got %d", w.Code)
		}
	})

	t.Run("mark read", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockIMessageUseCase(ctrl)
		uc.EXPECT().MarkRead(gomock.Any(), "m-1").Return(entities.ContactMessage{ID: "m-1", IsRead: true}, nil)

		w := doJSON(newMessageRouter(NewMessageHandler(uc)), http.MethodPatch, "/api/messages/m-1/read", "")
		if w.Code != http.StatusOK || !strings.Contains(w.Body.String(), `"isRead":true`) {
			t.Fatalf("unexpected response: %d %s", w.Code, w.Body.String())
		}
	})

	t.Run("list and delete", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockIMessageUseCase(ctrl)
		uc.EXPECT().List(gomock.Any()).Return(nil, nil)
		uc.EXPECT().Delete(gomock.Any(), "m-1").Return(nil)
		r := newMessageRouter(NewMessageHandler(uc))

		w := doJSON(r, http.MethodGet, "/api/messages", "")
		if w.Code != http.StatusOK || strings.TrimSpace(w.Body.String()) != "[]" {
			t.Fatalf("unexpected list response: %d %s", w.Code, w.Body.String())
		}
		if w := doJSON(r, http.MethodDelete, "/api/messages/m-1", ""); w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", w.Code)
		}
	})
}

func newServiceRouter(h *ServiceHandler) *gin.Engine {
	r := gin.New()
	r.GET("/api/services", h.ListServices)
	r.POST("/api/services", h.CreateService)
	r.PUT("/api/services/:id", h.UpdateService)
	r.DELETE("/api/services/:id", h.DeleteService)
	return r
}

func TestServiceHandler(t *testing.T) {
	gin.SetMode(gin.TestMode)

	t.Run("create", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockIServiceUseCase(ctrl)
		uc.EXPECT().Create(gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ context.Context, in usecase.ServiceInput) (entities.Service, error) {
				if in.Title != "Gros oeuvre" || len(in.Gallery) != 1 {
					t.Fatalf("unexpected input: %+v", in)
				}
				return entities.Service{ID: "s-1", Title: in.Title}, nil
			})

		w := doJSON(newServiceRouter(NewServiceHandler(uc)), http.MethodPost, "/api/services",
			`{"title":"Gros oeuvre","description":"Fondations","gallery":[{"title":"Chantier","image":"c.jpg"}]}`)
		if w.Code != http.StatusCreated {
			t.Fatalf("expected 201, got %d", w.Code)
		}
	})

	t.Run("update missing", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockIServiceUseCase(ctrl)
		uc.EXPECT().Update(gomock.Any(), "s-9", gomock.Any()).Return(entities.Service{}, usecase.ErrServiceNotFound)

		w := doJSON(newServiceRouter(NewServiceHandler(uc)), http.MethodPut, "/api/services/s-9", `{"title":"x","description":"y"}`)
		if w.Code != http.StatusNotFound {
			t.Fatalf("expected 404, got %d", w.Code)
		}
	})

	t.Run("list failure", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockIServiceUseCase(ctrl)
		uc.EXPECT().List(gomock.Any()).Return(nil, errors.New("dynamodb down"))

		w := doJSON(newServiceRouter(NewServiceHandler(uc)), http.MethodGet, "/api/services", "")
		if w.Code != http.StatusInternalServerError {
			t.Fatalf("expected 500, got %d", w.Code)
		}
	})

	t.Run("delete", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockIServiceUseCase(ctrl)
		uc.EXPECT().Delete(gomock.Any(), "s-1").Return(nil)

		w := doJSON(newServiceRouter(NewServiceHandler(uc)), http.MethodDelete, "/api/services/s-1", "")
		if w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", w.Code)
		}
	})
}

func TestPing(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/api/ping", Ping)
	w := doJSON(r, http.MethodGet, "/api/ping", "")
	if w.Code != http.StatusOK || !strings.Contains(w.Body.String(), "pong") {
		t.Fatalf("unexpected response: %d %s", w.Code, w.Body.String())
	}
}
