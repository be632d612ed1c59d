package repository

// PostListFilter 查询文章列表的过滤条件
type PostListFilter struct {
	Page          int
	PageSize      int
	CategorySlug  string
	CategoryID    string
	Search        string
	OnlyPublished bool
	WithCategory  bool
	OrderBy       string
}

// AdListFilter 查询广告列表的过滤条件
type AdListFilter struct {
	Page       int
	PageSize   int
	Position   string
	ActiveOnly bool
	OrderBy    string
}

// CommentListFilter 查询评论列表的过滤条件
type CommentListFilter struct {
	Page     int
	PageSize int
	PostID   string
}

// UserListFilter 查询后台用户列表的过滤条件
type UserListFilter struct {
	Page     int
	PageSize int
	Keyword  string
	Role     string
}
