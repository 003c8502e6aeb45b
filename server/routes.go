package server

import (
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func (s *Server) initRoutes() {
	// LOGIN
	s.RegisterRouteHandler("POST "+RouteAuthLogin, ChainMiddleware(s.LoginHandler(), s.APIMiddleware()...))
	s.RegisterRouteHandler("GET "+RouteAuthLogout, ChainMiddleware(s.LogoutHandler(), s.APIMiddleware()...))
	s.RegisterRouteHandler("GET "+RouteAuthSession, ChainMiddleware(s.SessionHandler(), s.APIMiddleware()...))

	// Relay routes (require a session; reads are scoped by the admin id)
	s.RegisterRouteHandler("GET "+RouteProxy, ChainMiddleware(s.ProxyGetHandler(), s.ProtectedAPIMiddleware()...))
	s.RegisterRouteHandler("POST "+RouteProxy, ChainMiddleware(s.ProxyPostHandler(), s.ProtectedAPIMiddleware()...))
	s.RegisterRouteHandler("PUT "+RouteProxy, ChainMiddleware(s.ProxyPutHandler(), s.ProtectedAPIMiddleware()...))
	s.RegisterRouteHandler("DELETE "+RouteProxy, ChainMiddleware(s.ProxyDeleteHandler(), s.ProtectedAPIMiddleware()...))

	// Catalog routes (paginated list screens + direct product writes)
	s.RegisterRouteHandler("GET "+RouteProducts, ChainMiddleware(s.ProductListHandler(), s.ProtectedAPIMiddleware()...))
	s.RegisterRouteHandler("POST "+RouteProducts, ChainMiddleware(s.ProductCreateHandler(), s.ProtectedAPIMiddleware()...))
	s.RegisterRouteHandler("PUT "+RouteProductID, ChainMiddleware(s.ProductUpdateHandler(), s.ProtectedAPIMiddleware()...))
	s.RegisterRouteHandler("GET "+RouteCategories, ChainMiddleware(s.CategoryListHandler(), s.ProtectedAPIMiddleware()...))
	s.RegisterRouteHandler("GET "+RouteOrders, ChainMiddleware(s.OrderListHandler(), s.ProtectedAPIMiddleware()...))
	s.RegisterRouteHandler("GET "+RouteCustomers, ChainMiddleware(s.CustomerListHandler(), s.ProtectedAPIMiddleware()...))

	// Dashboard
	s.RegisterRouteHandler("GET "+RouteDashboardMetrics, ChainMiddleware(s.DashboardMetricsHandler(), s.ProtectedAPIMiddleware()...))

	// Operational
	s.RegisterRouteHandler("GET "+RouteMetrics, promhttp.Handler())
}
