package repository

// Mongo collection names.
const (
	UsersCollection       = "users"
	PostsCollection       = "posts"
	TrendingCollection    = "trending_topics"
	CommunitiesCollection = "communities"
	ContactCollection     = "contact_messages"
	AdminLogsCollection   = "admin_logs"
)
