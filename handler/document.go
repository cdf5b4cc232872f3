package handler

import (
	"io"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/Unicus-11/quick-quill-clarity/model"
	"github.com/Unicus-11/quick-quill-clarity/pkg/logger"
	"github.com/Unicus-11/quick-quill-clarity/service"
)

var contentTypes = map[string]string{
	"pdf":  "application/pdf",
	"docx": "application/vnd.openxmlformats-officedocument.wordprocessingml.document",
	"txt":  "text/plain",
}

type DocumentHandler struct {
	store     *service.DocumentStore
	extractor service.Extractor
	llm       *service.LLMService
	archive   *service.ArchiveService // nil when archiving is disabled
}

func NewDocumentHandler(store *service.DocumentStore, extractor service.Extractor, llm *service.LLMService, archive *service.ArchiveService) *DocumentHandler {
	return &DocumentHandler{
		store:     store,
		extractor: extractor,
		llm:       llm,
		archive:   archive,
	}
}

// Upload ingests a document: extract text, run the clause pipeline, store
// the result and attach LLM summary and risk analysis. LLM failures degrade
// into diagnostic answer text; the clause analysis always succeeds.
func (h *DocumentHandler) Upload(c *gin.Context) {
	file, header, err := c.Request.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No file provided"})
		return
	}
	defer file.Close()

	if header.Filename == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Empty filename"})
		return
	}

	filename := filepath.Base(header.Filename)
	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(filename), "."))
	if _, ok := contentTypes[ext]; !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Only PDF, DOCX and TXT files are allowed"})
		return
	}

	data, err := io.ReadAll(file)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Failed to read file"})
		return
	}

	ctx := c.Request.Context()

	text, err := h.extractor.Extract(ctx, data, ext)
	if err != nil {
		logger.Warn(ctx, "text extraction failed", "filename", filename, "error", err)
		text = ""
	}
	if strings.TrimSpace(text) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Could not extract text from document"})
		return
	}

	docID := uuid.New().String()

	clauses, refinedText := service.Analyze(text)
	logger.Info(ctx, "document analyzed",
		"doc_id", docID,
		"filename", filename,
		"clauses", len(clauses),
	)

	var fileURL string
	if h.archive != nil {
		fileURL, err = h.archive.StoreOriginal(ctx, docID, filename, data, contentTypes[ext])
		if err != nil {
			// Archival is best effort, the analysis result stands on its own
			logger.Warn(ctx, "failed to archive original", "doc_id", docID, "error", err)
			fileURL = ""
		}
	}

	summary := h.llm.CompleteOrExplain(ctx, service.SummaryPrompt(refinedText), service.ModeSummary)
	risks := h.llm.CompleteOrExplain(ctx, service.RiskPrompt(refinedText), service.ModeQA)

	doc := &model.AnalyzedDocument{
		ID:          docID,
		Filename:    filename,
		FullText:    text,
		Clauses:     clauses,
		RefinedText: refinedText,
		Summary:     summary,
		Risks:       risks,
		FileURL:     fileURL,
		CreatedAt:   time.Now(),
	}
	h.store.Save(doc)

	response := gin.H{
		"doc_id":   docID,
		"filename": filename,
		"summary":  summary,
		"risks":    risks,
		"clauses":  clauses,
	}
	if fileURL != "" {
		response["file_url"] = fileURL
	}

	c.JSON(http.StatusOK, response)
}

type QueryRequest struct {
	DocID    string `json:"doc_id"`
	Question string `json:"question"`
}

// Query answers a free-form question scoped to a previously uploaded
// document. Unknown doc_id fails before any LLM call is attempted.
func (h *DocumentHandler) Query(c *gin.Context) {
	var req QueryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	if req.DocID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid doc_id"})
		return
	}

	doc, err := h.store.Get(req.DocID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid doc_id"})
		return
	}

	if req.Question == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No question provided"})
		return
	}

	ctx := c.Request.Context()
	answer := h.llm.CompleteOrExplain(ctx, service.QAPrompt(doc.FullText, req.Question), service.ModeQA)

	c.JSON(http.StatusOK, gin.H{"answer": answer})
}

// List returns all stored documents without clause bodies
func (h *DocumentHandler) List(c *gin.Context) {
	docs := h.store.GetAll()

	result := make([]gin.H, len(docs))
	for i, doc := range docs {
		result[i] = gin.H{
			"id":           doc.ID,
			"filename":     doc.Filename,
			"clause_count": len(doc.Clauses),
			"created_at":   doc.CreatedAt.Format(time.RFC3339),
		}
	}

	c.JSON(http.StatusOK, gin.H{"documents": result})
}

// Get returns a single stored analysis
func (h *DocumentHandler) Get(c *gin.Context) {
	id := c.Param("id")

	doc, err := h.store.Get(id)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Document not found"})
		return
	}

	c.JSON(http.StatusOK, doc)
}

// Delete removes a stored analysis and its archived original
func (h *DocumentHandler) Delete(c *gin.Context) {
	id := c.Param("id")

	doc, err := h.store.Get(id)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Document not found"})
		return
	}

	if h.archive != nil {
		if err := h.archive.DeleteOriginal(c.Request.Context(), doc.ID, doc.Filename); err != nil {
			logger.Warn(c.Request.Context(), "failed to delete archived original", "doc_id", doc.ID, "error", err)
		}
	}

	h.store.Delete(id)

	c.JSON(http.StatusOK, gin.H{"message": "Document deleted"})
}
