package handler

import (
	"notesapp/dto"
	"notesapp/usecase"
	"notesapp/utils"

	"github.com/gin-gonic/gin"
)

type pinRequest struct {
	IsPinned *bool `json:"isPinned"`
}

func AddNoteHandler(c *gin.Context, notesService *usecase.NotesService) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	var input usecase.AddNoteInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.BadRequest(c, "Invalid request body")
		return
	}

	note, err := notesService.AddNote(c, userID, input)
	if err != nil {
		respondError(c, "add_note", err)
		return
	}

	utils.Success(c, gin.H{
		"note":    dto.ToNoteResponse(note),
		"message": "Note added successfully",
	})
}

func EditNoteHandler(c *gin.Context, notesService *usecase.NotesService) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	var input usecase.EditNoteInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.BadRequest(c, "Invalid request body")
		return
	}

	note, err := notesService.EditNote(c, userID, c.Param("noteId"), input)
	if err != nil {
		respondError(c, "edit_note", err)
		return
	}

	utils.Success(c, gin.H{
		"note":    dto.ToNoteResponse(note),
		"message": "Note updated successfully",
	})
}

func GetAllNotesHandler(c *gin.Context, notesService *usecase.NotesService) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	notes, err := notesService.ListNotes(c, userID)
	if err != nil {
		respondError(c, "get_all_notes", err)
		return
	}

	utils.Success(c, gin.H{
		"notes":   dto.ToNoteResponses(notes),
		"message": "All notes retrieved successfully",
	})
}

func DeleteNoteHandler(c *gin.Context, notesService *usecase.NotesService) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	if err := notesService.DeleteNote(c, userID, c.Param("noteId")); err != nil {
		respondError(c, "delete_note", err)
		return
	}

	utils.Success(c, gin.H{"message": "Note deleted successfully"})
}

func UpdateNotePinnedHandler(c *gin.Context, notesService *usecase.NotesService) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	var req pinRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "Invalid request body")
		return
	}
	if req.IsPinned == nil {
		utils.BadRequest(c, "isPinned is required")
		return
	}

	note, err := notesService.SetPinned(c, userID, c.Param("noteId"), *req.IsPinned)
	if err != nil {
		respondError(c, "update_note_pinned", err)
		return
	}

	utils.Success(c, gin.H{
		"note":    dto.ToNoteResponse(note),
		"message": "Pin status updated",
	})
}

func SearchNotesHandler(c *gin.Context, notesService *usecase.NotesService) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	notes, err := notesService.SearchNotes(c, userID, c.Query("query"))
	if err != nil {
		respondError(c, "search_notes", err)
		return
	}

	utils.Success(c, gin.H{
		"notes":   dto.ToNoteResponses(notes),
		"message": "Notes matching the search query retrieved successfully",
	})
}
