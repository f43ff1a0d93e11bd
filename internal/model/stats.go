package model

// Stats are the aggregate row counts exposed by the stats endpoint.
type Stats struct {
	Users         int `json:"users"`
	Posts         int `json:"posts"`
	Messages      int `json:"messages"`
	Notifications int `json:"notifications"`
}
