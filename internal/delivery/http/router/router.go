// Package router contains routing and server setup for the HTTP delivery.
package router

import (
	"croptrade/internal/delivery/http/middleware"
	"croptrade/internal/delivery/http/router/handler"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

type RouterParams struct {
	fx.In

	SessionHandler     *handler.SessionHandler
	OnboardingHandler  *handler.OnboardingHandler
	ProfileHandler     *handler.ProfileHandler
	FarmerHandler      *handler.FarmerHandler
	BuyerHandler       *handler.BuyerHandler
	TransporterHandler *handler.TransporterHandler
	MobileHandler      *handler.MobileHandler
	AuthMiddleware     *middleware.AuthMiddleware
}

// router holds all the handlers that need to be registered.
type router struct {
	sessionHandler     *handler.SessionHandler
	onboardingHandler  *handler.OnboardingHandler
	profileHandler     *handler.ProfileHandler
	farmerHandler      *handler.FarmerHandler
	buyerHandler       *handler.BuyerHandler
	transporterHandler *handler.TransporterHandler
	mobileHandler      *handler.MobileHandler
	authMiddleware     *middleware.AuthMiddleware
}

// NewRouter is the constructor for the Router.
// Fx will inject the required handlers here.
func NewRouter(params RouterParams) *router {
	return &router{
		sessionHandler:     params.SessionHandler,
		onboardingHandler:  params.OnboardingHandler,
		profileHandler:     params.ProfileHandler,
		farmerHandler:      params.FarmerHandler,
		buyerHandler:       params.BuyerHandler,
		transporterHandler: params.TransporterHandler,
		mobileHandler:      params.MobileHandler,
		authMiddleware:     params.AuthMiddleware,
	}
}

// RegisterRoutes sets up all the API routes for the application.
func (r *router) RegisterRoutes(e *echo.Echo) {
	// Health check endpoint
	e.GET("/health", handler.HealthCheck)

	// Auth routes
	authGroup := e.Group("/auth")
	{
		authGroup.POST("/signup", r.sessionHandler.SignUp)
		authGroup.POST("/signin", r.sessionHandler.SignIn)
		authGroup.POST("/refresh", r.sessionHandler.RefreshToken)
		authGroup.POST("/password-reset/request", r.sessionHandler.RequestPasswordReset)
		authGroup.POST("/password-reset/confirm", r.sessionHandler.ResetPassword)
		authGroup.POST("/signout", r.sessionHandler.SignOut, r.authMiddleware.Authenticate)
	}

	// Onboarding routes resolve role and transporter setup after sign-in.
	onboardingGroup := e.Group("/onboarding")
	onboardingGroup.Use(r.authMiddleware.Authenticate)
	{
		onboardingGroup.GET("/status", r.onboardingHandler.Status)
		onboardingGroup.POST("/role", r.onboardingHandler.SelectRole)
		onboardingGroup.POST("/vehicle", r.onboardingHandler.RegisterVehicle)
	}

	// Profile routes that require authentication
	profileGroup := e.Group("/profile")
	profileGroup.Use(r.authMiddleware.Authenticate)
	{
		profileGroup.GET("", r.profileHandler.GetProfile)
		profileGroup.PUT("", r.profileHandler.UpdateProfile)
		profileGroup.POST("/avatar", r.profileHandler.UploadAvatar)
		profileGroup.GET("/payment-qr", r.profileHandler.PaymentQR)
	}

	// Farmer routes that require authentication and "farmer" role
	farmerGroup := e.Group("/farmer")
	farmerGroup.Use(r.authMiddleware.Authenticate)
	farmerGroup.Use(r.authMiddleware.RequireRole("farmer"))
	{
		farmerGroup.GET("/overview", r.farmerHandler.Overview)
		farmerGroup.POST("/crops", r.farmerHandler.ListCrop)
		farmerGroup.PATCH("/crops/:id/status", r.farmerHandler.UpdateCropStatus)
		farmerGroup.POST("/transport-requests", r.farmerHandler.RequestTransport)
	}

	// Buyer routes that require authentication and "buyer" role
	buyerGroup := e.Group("/buyer")
	buyerGroup.Use(r.authMiddleware.Authenticate)
	buyerGroup.Use(r.authMiddleware.RequireRole("buyer"))
	{
		buyerGroup.GET("/marketplace", r.buyerHandler.Marketplace)
		buyerGroup.GET("/trades", r.buyerHandler.MyTrades)
	}

	// Transporter routes that require authentication and "transporter" role
	transporterGroup := e.Group("/transporter")
	transporterGroup.Use(r.authMiddleware.Authenticate)
	transporterGroup.Use(r.authMiddleware.RequireRole("transporter"))
	{
		transporterGroup.GET("/overview", r.transporterHandler.Overview)
		transporterGroup.POST("/requests/:id/accept", r.transporterHandler.AcceptRequest)
		transporterGroup.PATCH("/requests/:id/status", r.transporterHandler.AdvanceRequest)
		transporterGroup.POST("/availability/toggle", r.transporterHandler.ToggleAvailability)
	}

	// Mobile companion routes
	mobileGroup := e.Group("/mobile")
	mobileGroup.Use(r.authMiddleware.Authenticate)
	{
		mobileGroup.GET("/capabilities", r.mobileHandler.Capabilities)
		mobileGroup.POST("/devices", r.mobileHandler.RegisterDevice)
		mobileGroup.POST("/alerts/price", r.mobileHandler.SendPriceAlert)
		mobileGroup.POST("/alerts/weather", r.mobileHandler.SendWeatherWarning)
	}
}
