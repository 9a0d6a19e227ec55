package consts

const (
	ReverseGeoKey = "geo:reverse:"
)

const (
	DashboardLock        = "dashboard:lock:"
	RouteConsolidateLock = "route:consolidate:lock"
)
