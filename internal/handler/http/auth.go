package http

import (
	"crypto/subtle"
	"encoding/json"
	"net/http"

	"github.com/qadam-hq/checkin-backend-go/internal/config"
	"github.com/qadam-hq/checkin-backend-go/internal/handler/http/response"
	"github.com/qadam-hq/checkin-backend-go/internal/pkg/jwt"
	employeesvc "github.com/qadam-hq/checkin-backend-go/internal/service/employee"
)

type AuthHandler interface {
	// IssueToken mints an access token for a Telegram ID. The caller proves
	// it is the bot backend by presenting the bot token.
	IssueToken(w http.ResponseWriter, r *http.Request)
}

type authHandlerImpl struct {
	employeeService employeesvc.Service
	jwtService      jwt.Service
	cfg             config.TelegramConfig
}

func NewAuthHandler(employeeService employeesvc.Service, jwtService jwt.Service, cfg config.TelegramConfig) AuthHandler {
	return &authHandlerImpl{
		employeeService: employeeService,
		jwtService:      jwtService,
		cfg:             cfg,
	}
}

type issueTokenRequest struct {
	TelegramID int64 `json:"telegram_id"`
}

type issueTokenResponse struct {
	Token     string `json:"token"`
	ExpiresAt int64  `json:"expires_at"`
	Role      string `json:"role"`
}

func (h *authHandlerImpl) IssueToken(w http.ResponseWriter, r *http.Request) {
	botToken := r.Header.Get("X-Bot-Token")
	if subtle.ConstantTimeCompare([]byte(botToken), []byte(h.cfg.BotToken)) != 1 {
		response.Unauthorized(w, "Invalid bot token")
		return
	}

	var req issueTokenRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	if req.TelegramID <= 0 {
		response.BadRequest(w, "telegram_id must be a positive integer", nil)
		return
	}

	role := jwt.RoleEmployee
	for _, adminID := range h.cfg.AdminChatIDs {
		if adminID == req.TelegramID {
			role = jwt.RoleAdmin
			break
		}
	}

	// Admins do not have to be enrolled as employees.
	if role == jwt.RoleEmployee {
		if _, err := h.employeeService.Get(r.Context(), req.TelegramID); err != nil {
			response.HandleError(w, err)
			return
		}
	}

	token, expiresAt, err := h.jwtService.GenerateAccessToken(req.TelegramID, role)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, issueTokenResponse{
		Token:     token,
		ExpiresAt: expiresAt,
		Role:      string(role),
	})
}
