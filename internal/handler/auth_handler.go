package handler

import (
	"net/http"

	auth "bakehub/internal/usecase/auth_usecase"

	"github.com/labstack/echo/v4"
)

type AuthHandler struct {
	otp      *auth.OTPUsecase
	register *auth.RegisterUserUsecase
	login    *auth.LoginUsecase
	reset    *auth.PasswordResetUsecase
	lookup   *auth.LookupUsecase
}

func NewAuthHandler(
	otp *auth.OTPUsecase,
	register *auth.RegisterUserUsecase,
	login *auth.LoginUsecase,
	reset *auth.PasswordResetUsecase,
	lookup *auth.LookupUsecase,
) *AuthHandler {
	return &AuthHandler{otp: otp, register: register, login: login, reset: reset, lookup: lookup}
}

type RegisterRequest struct {
	Name       string `json:"name"`
	Email      string `json:"email"`
	Password   string `json:"password"`
	Phone      string `json:"phone"`
	BakeryName string `json:"bakeryName"`
	Address    string `json:"address"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

type OTPRequest struct {
	Email string `json:"email"`
	OTP   string `json:"otp"`
}

type ResetPasswordRequest struct {
	Token    string `json:"token"`
	Password string `json:"password"`
}

type ExistsResponse struct {
	Exists bool `json:"exists"`
}

type RegisterResponse struct {
	Message string      `json:"message"`
	User    interface{} `json:"user"`
}

// /auth は未ログインで叩くので、rateLimitだけ前段に置く
func (h *AuthHandler) RegisterRoutes(api *echo.Group, limiter echo.MiddlewareFunc) {
	g := api.Group("/auth", limiter)

	g.POST("/send-otp", h.sendOTP)
	g.POST("/verify-otp", h.verifyOTP)
	g.POST("/register-customer", h.registerCustomer)
	g.POST("/register-owner", h.registerOwner)
	g.POST("/login", h.doLogin)
	g.POST("/forgot-password", h.forgotPassword)
	g.POST("/reset-password/:token", h.resetPassword)
	g.POST("/reset-password", h.resetPassword)
	g.GET("/check-email", h.checkEmail)
	g.GET("/check-phone", h.checkPhone)
}

func (h *AuthHandler) sendOTP(c echo.Context) error {
	var req OTPRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	if err := h.otp.Send(c.Request().Context(), req.Email); err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, SuccessResponse{Message: "OTP sent to your email."})
}

func (h *AuthHandler) verifyOTP(c echo.Context) error {
	var req OTPRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	if err := h.otp.Verify(c.Request().Context(), req.Email, req.OTP); err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]interface{}{
		"message":  "OTP verified successfully.",
		"verified": true,
	})
}

func (h *AuthHandler) registerCustomer(c echo.Context) error {
	var req RegisterRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	user, err := h.register.RegisterCustomer(c.Request().Context(), auth.RegisterUserInput{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
		Phone:    req.Phone,
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusCreated, RegisterResponse{Message: "Customer registered successfully", User: user})
}

func (h *AuthHandler) registerOwner(c echo.Context) error {
	var req RegisterRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	user, err := h.register.RegisterOwner(c.Request().Context(), auth.RegisterUserInput{
		Name:       req.Name,
		Email:      req.Email,
		Password:   req.Password,
		Phone:      req.Phone,
		BakeryName: req.BakeryName,
		Address:    req.Address,
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusCreated, RegisterResponse{Message: "Owner registered successfully. Bakery pending approval.", User: user})
}

func (h *AuthHandler) doLogin(c echo.Context) error {
	var req LoginRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	out, err := h.login.Execute(c.Request().Context(), auth.LoginInput{
		Email:    req.Email,
		Password: req.Password,
		Role:     req.Role,
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *AuthHandler) forgotPassword(c echo.Context) error {
	var req OTPRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	if err := h.reset.Forgot(c.Request().Context(), req.Email); err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, SuccessResponse{Message: auth.ForgotPasswordMessage})
}

// トークンはパスでもbodyでも受ける
func (h *AuthHandler) resetPassword(c echo.Context) error {
	var req ResetPasswordRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	if t := c.Param("token"); t != "" {
		req.Token = t
	}
	if err := h.reset.Reset(c.Request().Context(), req.Token, req.Password); err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, SuccessResponse{Message: "Password updated successfully"})
}

func (h *AuthHandler) checkEmail(c echo.Context) error {
	ok, err := h.lookup.EmailExists(c.Request().Context(), c.QueryParam("email"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, ExistsResponse{Exists: ok})
}

func (h *AuthHandler) checkPhone(c echo.Context) error {
	ok, err := h.lookup.PhoneExists(c.Request().Context(), c.QueryParam("phone"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, ExistsResponse{Exists: ok})
}
