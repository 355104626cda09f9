package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/med-directory/internal/httperr"
	"github.com/BruksfildServices01/med-directory/internal/httpresp"
	"github.com/BruksfildServices01/med-directory/internal/middleware"
	"github.com/BruksfildServices01/med-directory/internal/usecase/auth"
)

type AuthHandler struct {
	register  *auth.Register
	login     *auth.Login
	sendOTP   *auth.SendOTP
	verifyOTP *auth.VerifyOTP
}

func NewAuthHandler(
	register *auth.Register,
	login *auth.Login,
	sendOTP *auth.SendOTP,
	verifyOTP *auth.VerifyOTP,
) *AuthHandler {
	return &AuthHandler{
		register:  register,
		login:     login,
		sendOTP:   sendOTP,
		verifyOTP: verifyOTP,
	}
}

// --------- Requests ---------

type RegisterRequest struct {
	Name      string  `json:"name" binding:"required"`
	Surname   string  `json:"surname"`
	Phone     string  `json:"phone"`
	Email     string  `json:"email" binding:"required,email"`
	Password  string  `json:"password" binding:"required,min=6"`
	AvatarURL string  `json:"avatar_url"`
	RegionID  *string `json:"region_id"`
	Role      string  `json:"role"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type SendOTPRequest struct {
	Email string `json:"email" binding:"required,email"`
}

type VerifyOTPRequest struct {
	Email string `json:"email" binding:"required,email"`
	OTP   string `json:"otp" binding:"required"`
}

// --------- Handlers ---------

func (h *AuthHandler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		invalidRequest(c, err)
		return
	}

	id, err := h.register.Execute(c.Request.Context(), auth.RegisterInput{
		Name:      req.Name,
		Surname:   req.Surname,
		Phone:     req.Phone,
		Email:     req.Email,
		Password:  req.Password,
		AvatarURL: req.AvatarURL,
		RegionID:  req.RegionID,

		Role:       req.Role,
		CallerRole: middleware.UserRole(c),
	})
	if err != nil {
		httperr.Respond(c, err, unexpected("register_failed"))
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Registered successfully",
		"userId":  id,
	})
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		invalidRequest(c, err)
		return
	}

	token, err := h.login.Execute(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		httperr.Respond(c, err, unexpected("login_failed"))
		return
	}

	httpresp.OK(c, gin.H{"access_token": token})
}

func (h *AuthHandler) SendOTP(c *gin.Context) {
	var req SendOTPRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		invalidRequest(c, err)
		return
	}

	if err := h.sendOTP.Execute(c.Request.Context(), req.Email); err != nil {
		httperr.Respond(c, err, unexpected("otp_send_failed"))
		return
	}

	httpresp.Message(c, "OTP sent")
}

func (h *AuthHandler) VerifyOTP(c *gin.Context) {
	var req VerifyOTPRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		invalidRequest(c, err)
		return
	}

	if err := h.verifyOTP.Execute(c.Request.Context(), req.Email, req.OTP); err != nil {
		httperr.Respond(c, err, unexpected("otp_verify_failed"))
		return
	}

	httpresp.Message(c, "OTP verified successfully")
}
