// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package blog

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	requestutil "github.com/taibuivan/inkwell/internal/platform/request"
	"github.com/taibuivan/inkwell/internal/platform/respond"
	"github.com/taibuivan/inkwell/pkg/pagination"
)

const paramPostID = "postID"

// # Handler Implementation

// Handler implements the HTTP layer for posts, comments and likes.
type Handler struct {
	service *Service
}

// NewHandler constructs a new blog [Handler].
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Routes returns the post endpoints, mounted at /blog/posts.
//
// Reads are public paths; writes require an identity holding the path's
// permission, which the authorization gateway has already checked.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	router.Get("/", handler.ListPosts)
	router.Get("/{postID}/details", handler.GetPost)

	router.Post("/{postID}/comments", handler.CreateComment)
	router.Get("/{postID}/comments/list", handler.ListComments)

	router.Post("/{postID}/like", handler.LikePost)
	router.Delete("/{postID}/like", handler.UnlikePost)
	router.Get("/{postID}/likes/list", handler.ListLikes)

	return router
}

/*
GET /api/v1/blog/posts.

Response:
  - 200: Page of Post
*/
func (handler *Handler) ListPosts(writer http.ResponseWriter, request *http.Request) {
	posts, meta, err := handler.service.ListPosts(request.Context(), pagination.FromRequest(request))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Paginated(writer, "Posts retrieved", posts, meta)
}

/*
GET /api/v1/blog/posts/{postID}/details.

Response:
  - 200: Post
  - 404: Post not found
*/
func (handler *Handler) GetPost(writer http.ResponseWriter, request *http.Request) {
	postID, err := postIDParam(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	post, err := handler.service.GetPost(request.Context(), postID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, "Post retrieved", post)
}

/*
POST /api/v1/blog/posts/{postID}/comments.

Request:
  - body: CommentInput

Response:
  - 201: Comment
  - 400: Validation failed
  - 401: User not authenticated
  - 404: Post or parent comment not found
*/
func (handler *Handler) CreateComment(writer http.ResponseWriter, request *http.Request) {
	caller, err := requestutil.RequiredIdentity(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	postID, err := postIDParam(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input CommentInput
	if err := requestutil.DecodeJSON(writer, request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	comment, err := handler.service.CreateComment(request.Context(), caller, postID, input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Created(writer, "Comment created", comment)
}

/*
GET /api/v1/blog/posts/{postID}/comments/list.

Response:
  - 200: Page of Comment
*/
func (handler *Handler) ListComments(writer http.ResponseWriter, request *http.Request) {
	postID, err := postIDParam(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	comments, meta, err := handler.service.ListComments(request.Context(), postID, pagination.FromRequest(request))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Paginated(writer, "Comments retrieved", comments, meta)
}

/*
POST /api/v1/blog/posts/{postID}/like.

Response:
  - 201: Like
  - 404: Post not found
  - 409: Already liked
*/
func (handler *Handler) LikePost(writer http.ResponseWriter, request *http.Request) {
	caller, err := requestutil.RequiredIdentity(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	postID, err := postIDParam(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	like, err := handler.service.LikePost(request.Context(), caller, postID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Created(writer, "Post liked", like)
}

/*
DELETE /api/v1/blog/posts/{postID}/like.

Response:
  - 200: Like removed
  - 404: No like to remove
*/
func (handler *Handler) UnlikePost(writer http.ResponseWriter, request *http.Request) {
	caller, err := requestutil.RequiredIdentity(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	postID, err := postIDParam(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.UnlikePost(request.Context(), caller, postID); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, "Like removed", "")
}

/*
GET /api/v1/blog/posts/{postID}/likes/list.

Response:
  - 200: Page of Like
*/
func (handler *Handler) ListLikes(writer http.ResponseWriter, request *http.Request) {
	postID, err := postIDParam(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	likes, meta, err := handler.service.ListLikes(request.Context(), postID, pagination.FromRequest(request))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Paginated(writer, "Likes retrieved", likes, meta)
}

func postIDParam(request *http.Request) (int64, error) {
	raw, err := requestutil.NumericParam(request, paramPostID)
	if err != nil {
		return 0, err
	}

	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, requestutil.InvalidParam(paramPostID)
	}
	return id, nil
}
