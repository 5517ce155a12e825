package handlers

import (
	"net/http"

	"gallery/auth"
	"gallery/pagination"
	"gallery/submission"

	"github.com/gin-gonic/gin"
)

type WishCreateRequest struct {
	Name     string `json:"name"`
	Message  string `json:"message"`
	GuestID  string `json:"guestId"`
	DeviceID string `json:"deviceId"`
}

type PaginationInfo struct {
	Total   int64 `json:"total"`
	Page    int   `json:"page"`
	Limit   int   `json:"limit"`
	Pages   int64 `json:"pages"`
	HasMore bool  `json:"hasMore"`
}

type WishListResponse struct {
	Wishes     any            `json:"wishes"`
	Pagination PaginationInfo `json:"pagination"`
}

func (a *API) WishCreate(c *gin.Context) {
	r := WishCreateRequest{}
	if err := c.ShouldBindJSON(&r); err != nil {
		badRequest(c, err)
		return
	}
	wish, err := a.Submissions.SubmitWish(c.Request.Context(), submission.WishSubmission{
		DeviceID: deviceID(c, r.DeviceID, r.GuestID),
		Name:     r.Name,
		Message:  r.Message,
	})
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusCreated, wish)
}

func (a *API) WishList(c *gin.Context) {
	r := pagination.Request{Page: pagination.DefaultPage, Limit: pagination.DefaultLimit}
	if err := c.ShouldBindQuery(&r); err != nil {
		badRequest(c, err)
		return
	}
	page, err := a.Pages.ListWishes(c.Request.Context(), r)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, WishListResponse{
		Wishes: page.Items,
		Pagination: PaginationInfo{
			Total:   page.TotalCount,
			Page:    page.PageNumber,
			Limit:   page.PageSize,
			Pages:   page.Pages,
			HasMore: page.HasMore,
		},
	})
}

func (a *API) AdminWishList(c *gin.Context, admin *auth.Principal) {
	a.WishList(c)
}

func (a *API) AdminWishDelete(c *gin.Context, admin *auth.Principal) {
	if err := a.Lifecycle.DeleteWish(c.Request.Context(), c.Param("id")); err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, OKResponse)
}

func (a *API) AdminWishesDelete(c *gin.Context, admin *auth.Principal) {
	r := DeleteRequest{}
	if err := c.ShouldBindJSON(&r); err != nil {
		badRequest(c, err)
		return
	}
	result := a.Lifecycle.DeleteWishes(c.Request.Context(), r.IDs)
	c.JSON(http.StatusOK, MultiResponse{Deleted: result.DeletedCount, Failed: result.FailedIDs})
}
