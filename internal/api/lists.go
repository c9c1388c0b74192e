package api

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/open2log/shopping-lists/internal/middleware"
	"github.com/open2log/shopping-lists/internal/models"
	"github.com/open2log/shopping-lists/internal/storage"
)

// createListRequest is the body of POST /lists.
type createListRequest struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
	Shared      bool   `json:"shared"`
}

// addItemRequest is the body of POST /lists/:id/items.
type addItemRequest struct {
	ProductID string `json:"product_id"`
	Name      string `json:"name" binding:"required"`
	Quantity  *int   `json:"quantity"`
}

// listLists returns every list the caller can read, most recently updated
// first. Items are not included.
func (s *Server) listLists(c *gin.Context) {
	userID := middleware.GetUserID(c)

	lists, err := s.store.ListLists(c.Request.Context(), userID)
	if err != nil {
		slog.Error("ListLists failed", "user_id", userID, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": lists})
}

// getList returns one list with its items. A list that is absent or not
// readable by the caller yields the same 404; existence is never leaked.
func (s *Server) getList(c *gin.Context) {
	userID := middleware.GetUserID(c)
	listID := c.Param("id")

	list, err := s.store.GetList(c.Request.Context(), listID, userID)
	if errors.Is(err, storage.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
		return
	}
	if err != nil {
		slog.Error("GetList failed", "list_id", listID, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}

	items, err := s.store.ListItems(c.Request.Context(), list.ID)
	if err != nil {
		slog.Error("ListItems failed", "list_id", listID, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": gin.H{
		"list":  list,
		"items": items,
	}})
}

// createList creates a list owned by the caller. Shared defaults to false.
func (s *Server) createList(c *gin.Context) {
	userID := middleware.GetUserID(c)

	var req createListRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	list := &models.ShoppingList{
		OwnerID:     userID,
		Name:        req.Name,
		Description: req.Description,
		Shared:      req.Shared,
	}
	if err := s.store.CreateList(c.Request.Context(), list); err != nil {
		slog.Error("CreateList failed", "user_id", userID, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}

	slog.Info("List created", "list_id", list.ID, "user_id", userID, "shared", list.Shared)

	c.JSON(http.StatusOK, gin.H{"data": gin.H{
		"id":     list.ID,
		"name":   list.Name,
		"shared": list.Shared,
	}})
}

// addItem appends an item to a list the caller can read and bumps the list's
// updated_at. The access check runs first so that callers without read access
// get the same 404 whether or not the list exists.
func (s *Server) addItem(c *gin.Context) {
	userID := middleware.GetUserID(c)
	listID := c.Param("id")

	var req addItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if _, err := s.store.GetList(c.Request.Context(), listID, userID); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
			return
		}
		slog.Error("GetList failed", "list_id", listID, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}

	quantity := 1
	if req.Quantity != nil {
		quantity = *req.Quantity
	}

	item := &models.ShoppingListItem{
		ListID:    listID,
		ProductID: req.ProductID,
		Name:      req.Name,
		Quantity:  quantity,
	}
	if err := s.store.AddItem(c.Request.Context(), item); err != nil {
		slog.Error("AddItem failed", "list_id", listID, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}

	slog.Info("Item added", "item_id", item.ID, "list_id", listID, "user_id", userID)

	c.JSON(http.StatusOK, gin.H{"data": gin.H{
		"id":       item.ID,
		"name":     item.Name,
		"quantity": item.Quantity,
	}})
}

// deleteList deletes a list the caller owns. The response is 200 regardless
// of whether a row was deleted, so the caller learns nothing about existence
// or ownership.
func (s *Server) deleteList(c *gin.Context) {
	userID := middleware.GetUserID(c)
	listID := c.Param("id")

	if err := s.store.DeleteList(c.Request.Context(), listID, userID); err != nil {
		slog.Error("DeleteList failed", "list_id", listID, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}

	slog.Info("List delete processed", "list_id", listID, "user_id", userID)

	c.Status(http.StatusOK)
}
