package schema

// BlogNotificationTable represents the 'blog.notification' table
type BlogNotificationTable struct {
	Table          string
	ID             string
	RecipientID    string
	RecipientName  string
	RecipientEmail string
	Message        string
	IsRead         string
	CreatedAt      string
}

// BlogNotification is the schema definition for blog.notification
var BlogNotification = BlogNotificationTable{
	Table:          "blog.notification",
	ID:             "id",
	RecipientID:    "recipientid",
	RecipientName:  "recipientname",
	RecipientEmail: "recipientemail",
	Message:        "message",
	IsRead:         "isread",
	CreatedAt:      "createdat",
}

func (t BlogNotificationTable) Columns() []string {
	return []string{t.ID, t.RecipientID, t.RecipientName, t.RecipientEmail, t.Message, t.IsRead, t.CreatedAt}
}
