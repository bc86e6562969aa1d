package service

import (
	"context"

	"docchat-be/internal/apperr"
	"docchat-be/internal/entity"
	"docchat-be/internal/pkg/logger"
	"docchat-be/internal/repository/contract"
	"docchat-be/pkg/chunker"
	"docchat-be/pkg/embedding"
	"docchat-be/pkg/extractor"
	"docchat-be/pkg/llm"
	"docchat-be/pkg/rag/message"
	"docchat-be/pkg/vectorindex"
)

const pdfContentType = "application/pdf"

// IChatService is the pipeline orchestrator: Ingest turns an uploaded
// document into embedded chunk records, Ask answers a question from the
// session's document plus its recent history.
type IChatService interface {
	Ingest(ctx context.Context, sessionId string, payload []byte, contentType string) (int, error)
	Ask(ctx context.Context, sessionId string, question string) (string, error)
}

// PipelineConfig carries the tunables of the retrieval pipeline. All of them
// arrive from configuration; nothing is hardcoded in the pipeline itself.
type PipelineConfig struct {
	ChunkSize  int
	Overlap    int
	RetrievalK int
}

type chatService struct {
	sessionRepo    contract.ISessionRepository
	extractor      extractor.DocumentExtractor
	embedder       embedding.EmbeddingProvider
	llmProvider    llm.LLMProvider
	messageFactory *message.Factory
	pipeline       PipelineConfig
	logger         logger.ILogger
}

func NewChatService(
	sessionRepo contract.ISessionRepository,
	docExtractor extractor.DocumentExtractor,
	embedder embedding.EmbeddingProvider,
	llmProvider llm.LLMProvider,
	pipeline PipelineConfig,
	logger logger.ILogger,
) IChatService {
	return &chatService{
		sessionRepo:    sessionRepo,
		extractor:      docExtractor,
		embedder:       embedder,
		llmProvider:    llmProvider,
		messageFactory: message.NewFactory(),
		pipeline:       pipeline,
		logger:         logger,
	}
}

// Ingest extracts, chunks and embeds the document, then persists each
// chunk+embedding in document order. The embedding call is batched over all
// chunks. History is never touched here.
func (s *chatService) Ingest(ctx context.Context, sessionId string, payload []byte, contentType string) (int, error) {
	if err := s.requireSession(ctx, sessionId); err != nil {
		return 0, err
	}
	if contentType != pdfContentType {
		return 0, apperr.ErrInvalidDocumentType
	}

	text, err := s.extractor.Extract(ctx, payload)
	if err != nil {
		return 0, err
	}

	chunks, err := chunker.Split(text, s.pipeline.ChunkSize, s.pipeline.Overlap)
	if err != nil {
		return 0, err
	}

	vectors, err := s.embedder.EmbedBatch(ctx, chunks)
	if err != nil {
		return 0, err
	}

	for i, chunk := range chunks {
		record := entity.ChunkRecord{
			Text:      chunk,
			Embedding: vectors[i],
		}
		if err := s.sessionRepo.AppendChunk(ctx, sessionId, record); err != nil {
			return 0, err
		}
	}

	s.logger.Info("chat", "document ingested", map[string]interface{}{
		"session_id": sessionId,
		"chunks":     len(chunks),
	})

	return len(chunks), nil
}

// Ask runs retrieval-augmented generation for one question. The steps are all
// fallible and any failure aborts the request before the history write: the
// (question, answer) pair is appended only after generation succeeds, so a
// failed request leaves stored history untouched.
func (s *chatService) Ask(ctx context.Context, sessionId string, question string) (string, error) {
	if err := s.requireSession(ctx, sessionId); err != nil {
		return "", err
	}

	history, err := s.sessionRepo.ListHistory(ctx, sessionId)
	if err != nil {
		return "", err
	}

	queryVectors, err := s.embedder.EmbedBatch(ctx, []string{question})
	if err != nil {
		return "", err
	}

	records, err := s.sessionRepo.ListChunks(ctx, sessionId)
	if err != nil {
		return "", err
	}
	if len(records) == 0 {
		// Distinct from the index-level empty corpus so the client gets an
		// actionable "upload first" signal.
		return "", apperr.ErrNoDocument
	}

	vectors := make([][]float32, len(records))
	for i, record := range records {
		vectors[i] = record.Embedding
	}

	index, err := vectorindex.Build(vectors)
	if err != nil {
		return "", err
	}
	nearest, err := index.Search(queryVectors[0], s.pipeline.RetrievalK)
	if err != nil {
		return "", err
	}

	chunkTexts := make([]string, len(nearest))
	for i, idx := range nearest {
		chunkTexts[i] = records[idx].Text
	}

	messages := s.messageFactory.Assemble(chunkTexts, history, question)

	answer, err := s.llmProvider.Chat(ctx, messages)
	if err != nil {
		return "", apperr.Wrap(apperr.ErrGeneration, err)
	}

	// Point of no return: everything succeeded, record the turn.
	entry := entity.HistoryEntry{Question: question, Answer: answer}
	if err := s.sessionRepo.AppendHistory(ctx, sessionId, entry); err != nil {
		return "", err
	}

	s.logger.Info("chat", "question answered", map[string]interface{}{
		"session_id": sessionId,
		"retrieved":  len(nearest),
		"history":    len(history),
	})

	return answer, nil
}

func (s *chatService) requireSession(ctx context.Context, sessionId string) error {
	exists, err := s.sessionRepo.Exists(ctx, sessionId)
	if err != nil {
		return err
	}
	if !exists {
		return apperr.ErrSessionNotFound
	}
	return nil
}
