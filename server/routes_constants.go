package server

// Route path constants
// All application routes are defined here to ensure consistency and prevent typos
const (
	// Auth Routes - Login & Logout
	RouteLogin       = "/login"
	RouteAuthLogin   = "/auth/login"
	RouteAuthLogout  = "/auth/logout"
	RouteAuthSession = "/auth/session"

	// Relay Route (browser-facing proxy to the backend)
	RouteProxy = "/api/proxy"

	// Catalog Routes
	RouteProducts   = "/api/products"
	RouteProductID  = "/api/products/{id}"
	RouteCategories = "/api/categories"
	RouteOrders     = "/api/orders"
	RouteCustomers  = "/api/customers"

	// Dashboard Routes
	RouteDashboardMetrics = "/api/dashboard/metrics"

	// Operational Routes
	RouteMetrics = "/metrics"
)

// Backend route suffixes the gateway itself addresses (the relay takes
// arbitrary suffixes from the caller; these are the ones the catalog and
// dashboard handlers use directly).
const (
	backendAllProducts     = "all/products"
	backendAllCategories   = "all/category"
	backendAllCustomers    = "all/user"
	backendAllOrders       = "all/order/system"
	backendAddProduct      = "add/product"
	backendProduct         = "product"
	backendPendingOrders   = "count/pending/order"
	backendDispatchedOrder = "count/dispatched/order"
	backendDeliveredOrders = "count/delivered/order"
	backendLowQuantity     = "low/quantity"
)
