package schema

// BlogCommentTable represents the 'blog.comment' table
type BlogCommentTable struct {
	Table      string
	ID         string
	PostID     string
	ParentID   string
	AuthorID   string
	AuthorName string
	Content    string
	CreatedAt  string
}

// BlogComment is the schema definition for blog.comment
var BlogComment = BlogCommentTable{
	Table:      "blog.comment",
	ID:         "id",
	PostID:     "postid",
	ParentID:   "parentid",
	AuthorID:   "authorid",
	AuthorName: "authorname",
	Content:    "content",
	CreatedAt:  "createdat",
}

func (t BlogCommentTable) Columns() []string {
	return []string{t.ID, t.PostID, t.ParentID, t.AuthorID, t.AuthorName, t.Content, t.CreatedAt}
}
