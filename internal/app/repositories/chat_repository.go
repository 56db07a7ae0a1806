package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/okaradag/unipath/internal/app/models"
	"github.com/okaradag/unipath/internal/pkg/apperrors"
	"github.com/okaradag/unipath/internal/pkg/dberrors"
	"github.com/okaradag/unipath/internal/pkg/logger"
)

// ChatRepository handles conversation and message database operations
type ChatRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewChatRepository creates a new ChatRepository
func NewChatRepository(db *pgxpool.Pool) *ChatRepository {
	return &ChatRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

// CreateConversation opens a student-agent thread. Only one thread per
// pair exists.
func (r *ChatRepository) CreateConversation(ctx context.Context, studentID, agentID int64) (int64, error) {
	now := time.Now()
	sql, args, err := r.sb.Insert("conversations").
		Columns("student_id", "agent_id", "created_at", "updated_at").
		Values(studentID, agentID, now, now).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("failed to build create conversation query: %w", err)
	}

	var id int64
	if err := r.db.QueryRow(ctx, sql, args...).Scan(&id); err != nil {
		if dberrors.IsDuplicateConstraintError(err, "conversations_student_id_agent_id_key") {
			return 0, apperrors.ErrResourceAlreadyExists
		}
		logger.Error().Err(err).Int64("studentID", studentID).Int64("agentID", agentID).Msg("Error executing create conversation query")
		return 0, fmt.Errorf("error creating conversation: %w", err)
	}
	return id, nil
}

// GetConversationByID retrieves a conversation by ID
func (r *ChatRepository) GetConversationByID(ctx context.Context, id int64) (*models.Conversation, error) {
	sql, args, err := r.sb.Select("id", "student_id", "agent_id", "created_at", "updated_at").
		From("conversations").
		Where(squirrel.Eq{"id": id}).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get conversation query: %w", err)
	}

	var c models.Conversation
	err = r.db.QueryRow(ctx, sql, args...).
		Scan(&c.ID, &c.StudentID, &c.AgentID, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrConversationNotFound
		}
		logger.Error().Err(err).Int64("conversationID", id).Msg("Error scanning conversation row")
		return nil, fmt.Errorf("error retrieving conversation: %w", err)
	}
	return &c, nil
}

// GetConversationByPair retrieves the thread between a student and an
// agent, if one exists
func (r *ChatRepository) GetConversationByPair(ctx context.Context, studentID, agentID int64) (*models.Conversation, error) {
	sql, args, err := r.sb.Select("id", "student_id", "agent_id", "created_at", "updated_at").
		From("conversations").
		Where(squirrel.Eq{"student_id": studentID, "agent_id": agentID}).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get conversation by pair query: %w", err)
	}

	var c models.Conversation
	err = r.db.QueryRow(ctx, sql, args...).
		Scan(&c.ID, &c.StudentID, &c.AgentID, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrConversationNotFound
		}
		logger.Error().Err(err).Msg("Error scanning conversation row")
		return nil, fmt.Errorf("error retrieving conversation: %w", err)
	}
	return &c, nil
}

// ListConversationsForUser returns every thread the user participates
// in, most recently active first. Students match on student_id, agents
// on agent_id.
func (r *ChatRepository) ListConversationsForUser(ctx context.Context, userID int64) ([]*models.Conversation, error) {
	sql, args, err := r.sb.Select("id", "student_id", "agent_id", "created_at", "updated_at").
		From("conversations").
		Where(squirrel.Or{
			squirrel.Eq{"student_id": userID},
			squirrel.Eq{"agent_id": userID},
		}).
		OrderBy("updated_at DESC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build list conversations query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Int64("userID", userID).Msg("Error executing list conversations query")
		return nil, fmt.Errorf("error listing conversations: %w", err)
	}
	defer rows.Close()

	var conversations []*models.Conversation
	for rows.Next() {
		var c models.Conversation
		if err := rows.Scan(&c.ID, &c.StudentID, &c.AgentID, &c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, fmt.Errorf("error scanning conversation row: %w", err)
		}
		conversations = append(conversations, &c)
	}
	return conversations, rows.Err()
}

// CreateMessage appends a message to a conversation and bumps the
// thread's activity timestamp
func (r *ChatRepository) CreateMessage(ctx context.Context, msg *models.ChatMessage) (int64, error) {
	sql, args, err := r.sb.Insert("chat_messages").
		Columns("conversation_id", "sender_id", "content", "is_read", "created_at").
		Values(msg.ConversationID, msg.SenderID, msg.Content, false, time.Now()).
		Suffix("RETURNING id, created_at").
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("failed to build create message query: %w", err)
	}

	var id int64
	var createdAt time.Time
	if err := r.db.QueryRow(ctx, sql, args...).Scan(&id, &createdAt); err != nil {
		if dberrors.IsForeignKeyViolation(err) {
			return 0, apperrors.ErrConversationNotFound
		}
		logger.Error().Err(err).Int64("conversationID", msg.ConversationID).Msg("Error executing create message query")
		return 0, fmt.Errorf("error creating message: %w", err)
	}
	msg.ID = id
	msg.CreatedAt = createdAt

	touchSQL, touchArgs, err := r.sb.Update("conversations").
		Set("updated_at", time.Now()).
		Where(squirrel.Eq{"id": msg.ConversationID}).
		ToSql()
	if err != nil {
		return id, fmt.Errorf("failed to build touch conversation query: %w", err)
	}
	if _, err := r.db.Exec(ctx, touchSQL, touchArgs...); err != nil {
		logger.Warn().Err(err).Int64("conversationID", msg.ConversationID).Msg("Failed to bump conversation activity")
	}
	return id, nil
}

// ListMessages returns a conversation's messages, oldest first
func (r *ChatRepository) ListMessages(ctx context.Context, conversationID int64, limit int) ([]*models.ChatMessage, error) {
	builder := r.sb.Select("id", "conversation_id", "sender_id", "content", "is_read", "created_at").
		From("chat_messages").
		Where(squirrel.Eq{"conversation_id": conversationID}).
		OrderBy("created_at")
	if limit > 0 {
		builder = builder.Limit(uint64(limit))
	}
	sql, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build list messages query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Int64("conversationID", conversationID).Msg("Error executing list messages query")
		return nil, fmt.Errorf("error listing messages: %w", err)
	}
	defer rows.Close()

	var messages []*models.ChatMessage
	for rows.Next() {
		var m models.ChatMessage
		if err := rows.Scan(&m.ID, &m.ConversationID, &m.SenderID, &m.Content, &m.IsRead, &m.CreatedAt); err != nil {
			return nil, fmt.Errorf("error scanning message row: %w", err)
		}
		messages = append(messages, &m)
	}
	return messages, rows.Err()
}

// MarkMessagesRead flags all messages sent by the other participant as
// read
func (r *ChatRepository) MarkMessagesRead(ctx context.Context, conversationID, readerID int64) error {
	sql, args, err := r.sb.Update("chat_messages").
		Set("is_read", true).
		Where(squirrel.And{
			squirrel.Eq{"conversation_id": conversationID, "is_read": false},
			squirrel.NotEq{"sender_id": readerID},
		}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build mark messages read query: %w", err)
	}

	if _, err := r.db.Exec(ctx, sql, args...); err != nil {
		logger.Error().Err(err).Int64("conversationID", conversationID).Msg("Error marking messages read")
		return fmt.Errorf("error marking messages read: %w", err)
	}
	return nil
}
