package schema

// BlogPostTable represents the 'blog.post' table
type BlogPostTable struct {
	Table      string
	ID         string
	Title      string
	OwnerID    string
	OwnerName  string
	OwnerEmail string
	CreatedAt  string
}

// BlogPost is the schema definition for blog.post
var BlogPost = BlogPostTable{
	Table:      "blog.post",
	ID:         "id",
	Title:      "title",
	OwnerID:    "ownerid",
	OwnerName:  "ownername",
	OwnerEmail: "owneremail",
	CreatedAt:  "createdat",
}

func (t BlogPostTable) Columns() []string {
	return []string{t.ID, t.Title, t.OwnerID, t.OwnerName, t.OwnerEmail, t.CreatedAt}
}
