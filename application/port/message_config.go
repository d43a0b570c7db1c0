package port

// MessageDefaults supplies values for message attributes the caller left unset.
type MessageDefaults interface {
	DefaultUsername() string
	DefaultIcon() string
	DefaultChannel() string
}

// StaticRoutes resolves recipients configured outside the route store.
type StaticRoutes interface {
	RouteFor(recipient string) string
}
