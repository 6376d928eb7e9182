package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"
	"go.uber.org/zap"

	"github.com/AndrivA89/brain-dump/internal/domain"
)

// Neo4jStateRepository stores notebooks and nodes as graph nodes and
// connections as CONNECTS relationships between them.
type Neo4jStateRepository struct {
	driver neo4j.DriverWithContext
	logger *zap.Logger
}

func NewNeo4jStateRepository(driver neo4j.DriverWithContext, logger *zap.Logger) *Neo4jStateRepository {
	return &Neo4jStateRepository{
		driver: driver,
		logger: logger,
	}
}

func (r *Neo4jStateRepository) closeSession(ctx context.Context, session neo4j.SessionWithContext) {
	if err := session.Close(ctx); err != nil {
		r.logger.Warn("failed to close neo4j session", zap.Error(err))
	}
}

// Save replaces everything stored with the given state in one transaction.
func (r *Neo4jStateRepository) Save(ctx context.Context, state *domain.NotebookState) error {
	notebooks, err := notebookParams(state)
	if err != nil {
		return err
	}

	session := r.driver.NewSession(ctx, neo4j.SessionConfig{AccessMode: neo4j.AccessModeWrite})
	defer r.closeSession(ctx, session)

	_, err = session.ExecuteWrite(ctx, func(tx neo4j.ManagedTransaction) (interface{}, error) {
		steps := []struct {
			query  string
			params map[string]interface{}
		}{
			{
				query: `
					MATCH (x)
					WHERE x:Notebook OR x:Node OR x:Selection
					DETACH DELETE x
				`,
			},
			{
				query: `
					UNWIND $notebooks AS nb
					CREATE (:Notebook {
						id: nb.id,
						label: nb.label,
						color: nb.color,
						description: nb.description,
						created_at: nb.created_at,
						updated_at: nb.updated_at,
						undo_stack: nb.undo_stack,
						redo_stack: nb.redo_stack
					})
				`,
				params: map[string]interface{}{"notebooks": notebooks},
			},
			{
				query: `
					UNWIND $nodes AS n
					MATCH (nb:Notebook {id: n.notebook_id})
					CREATE (:Node {
						id: n.id,
						notebook_id: n.notebook_id,
						type: n.type,
						content: n.content,
						x: n.x,
						y: n.y,
						width: n.width,
						height: n.height,
						tag: n.tag,
						pinned: n.pinned,
						created_at: n.created_at,
						updated_at: n.updated_at
					})-[:IN]->(nb)
				`,
				params: map[string]interface{}{"nodes": nodeParams(state.Nodes)},
			},
			{
				query: `
					UNWIND $connections AS c
					MATCH (s:Node {id: c.source_node_id}), (t:Node {id: c.target_node_id})
					CREATE (s)-[:CONNECTS {
						id: c.id,
						notebook_id: c.notebook_id,
						created_at: c.created_at
					}]->(t)
				`,
				params: map[string]interface{}{"connections": connectionParams(state.Connections)},
			},
			{
				query:  `CREATE (:Selection {notebook_id: $selected})`,
				params: map[string]interface{}{"selected": state.SelectedNotebookID},
			},
		}

		for _, step := range steps {
			result, err := tx.Run(ctx, step.query, step.params)
			if err != nil {
				return nil, err
			}
			if _, err = result.Consume(ctx); err != nil {
				return nil, err
			}
		}
		return nil, nil
	})
	if err != nil {
		return fmt.Errorf("failed to save notebook state: %w", err)
	}

	r.logger.Debug("saved notebook state to neo4j",
		zap.Int("notebooks", len(state.Notebooks)),
		zap.Int("nodes", len(state.Nodes)),
		zap.Int("connections", len(state.Connections)))
	return nil
}

// Load reads the stored state, or the part owned by notebookID when it is set.
func (r *Neo4jStateRepository) Load(ctx context.Context, notebookID string) (*domain.NotebookState, error) {
	session := r.driver.NewSession(ctx, neo4j.SessionConfig{AccessMode: neo4j.AccessModeRead})
	defer r.closeSession(ctx, session)

	result, err := session.ExecuteRead(ctx, func(tx neo4j.ManagedTransaction) (interface{}, error) {
		state := &domain.NotebookState{
			UndoStacks: map[string][]domain.Action{},
			RedoStacks: map[string][]domain.Action{},
		}
		params := map[string]interface{}{"notebook_id": notebookID}

		res, err := tx.Run(ctx, `
			MATCH (nb:Notebook)
			WHERE $notebook_id = '' OR nb.id = $notebook_id
			RETURN nb.id AS id, nb.label AS label, nb.color AS color, nb.description AS description,
			       nb.created_at AS created_at, nb.updated_at AS updated_at,
			       nb.undo_stack AS undo_stack, nb.redo_stack AS redo_stack
			ORDER BY nb.created_at, nb.id
		`, params)
		if err != nil {
			return nil, err
		}
		for res.Next(ctx) {
			record := res.Record()
			nb := domain.Notebook{
				ID:          getString(record, "id"),
				Label:       getString(record, "label"),
				Color:       getString(record, "color"),
				Description: getString(record, "description"),
				CreatedAt:   getTime(record, "created_at"),
				UpdatedAt:   getTime(record, "updated_at"),
			}
			state.Notebooks = append(state.Notebooks, nb)

			if err := decodeStack(getString(record, "undo_stack"), nb.ID, state.UndoStacks); err != nil {
				return nil, err
			}
			if err := decodeStack(getString(record, "redo_stack"), nb.ID, state.RedoStacks); err != nil {
				return nil, err
			}
		}
		if err = res.Err(); err != nil {
			return nil, err
		}

		res, err = tx.Run(ctx, `
			MATCH (n:Node)-[:IN]->(nb:Notebook)
			WHERE $notebook_id = '' OR nb.id = $notebook_id
			RETURN n.id AS id, n.notebook_id AS notebook_id, n.type AS type, n.content AS content,
			       n.x AS x, n.y AS y, n.width AS width, n.height AS height,
			       n.tag AS tag, n.pinned AS pinned, n.created_at AS created_at, n.updated_at AS updated_at
			ORDER BY n.created_at, n.id
		`, params)
		if err != nil {
			return nil, err
		}
		for res.Next(ctx) {
			record := res.Record()
			state.Nodes = append(state.Nodes, domain.Node{
				ID:         getString(record, "id"),
				NotebookID: getString(record, "notebook_id"),
				Type:       domain.NodeType(getString(record, "type")),
				Content:    getString(record, "content"),
				Position:   domain.Position{X: getFloat(record, "x"), Y: getFloat(record, "y")},
				Size:       domain.Size{Width: getFloat(record, "width"), Height: getFloat(record, "height")},
				Tag:        domain.NodeTag(getString(record, "tag")),
				Pinned:     getBool(record, "pinned"),
				CreatedAt:  getTime(record, "created_at"),
				UpdatedAt:  getTime(record, "updated_at"),
			})
		}
		if err = res.Err(); err != nil {
			return nil, err
		}

		res, err = tx.Run(ctx, `
			MATCH (s:Node)-[r:CONNECTS]->(t:Node)
			WHERE $notebook_id = '' OR r.notebook_id = $notebook_id
			RETURN r.id AS id, r.notebook_id AS notebook_id, s.id AS source_node_id,
			       t.id AS target_node_id, r.created_at AS created_at
			ORDER BY r.created_at, r.id
		`, params)
		if err != nil {
			return nil, err
		}
		for res.Next(ctx) {
			record := res.Record()
			state.Connections = append(state.Connections, domain.Connection{
				ID:           getString(record, "id"),
				NotebookID:   getString(record, "notebook_id"),
				SourceNodeID: getString(record, "source_node_id"),
				TargetNodeID: getString(record, "target_node_id"),
				CreatedAt:    getTime(record, "created_at"),
			})
		}
		if err = res.Err(); err != nil {
			return nil, err
		}

		res, err = tx.Run(ctx, `MATCH (s:Selection) RETURN s.notebook_id AS notebook_id LIMIT 1`, nil)
		if err != nil {
			return nil, err
		}
		if res.Next(ctx) {
			selected := getString(res.Record(), "notebook_id")
			if notebookID == "" || selected == notebookID {
				state.SelectedNotebookID = selected
			}
		}
		return state, res.Err()
	})
	if err != nil {
		return nil, fmt.Errorf("failed to load notebook state: %w", err)
	}

	return result.(*domain.NotebookState), nil
}

func notebookParams(state *domain.NotebookState) ([]interface{}, error) {
	out := make([]interface{}, 0, len(state.Notebooks))
	for _, nb := range state.Notebooks {
		undo, err := json.Marshal(state.UndoStacks[nb.ID])
		if err != nil {
			return nil, fmt.Errorf("encode undo stack of %s: %w", nb.ID, err)
		}
		redo, err := json.Marshal(state.RedoStacks[nb.ID])
		if err != nil {
			return nil, fmt.Errorf("encode redo stack of %s: %w", nb.ID, err)
		}
		out = append(out, map[string]interface{}{
			"id":          nb.ID,
			"label":       nb.Label,
			"color":       nb.Color,
			"description": nb.Description,
			"created_at":  nb.CreatedAt.UnixMilli(),
			"updated_at":  nb.UpdatedAt.UnixMilli(),
			"undo_stack":  string(undo),
			"redo_stack":  string(redo),
		})
	}
	return out, nil
}

func nodeParams(nodes []domain.Node) []interface{} {
	out := make([]interface{}, 0, len(nodes))
	for _, n := range nodes {
		out = append(out, map[string]interface{}{
			"id":          n.ID,
			"notebook_id": n.NotebookID,
			"type":        string(n.Type),
			"content":     n.Content,
			"x":           n.Position.X,
			"y":           n.Position.Y,
			"width":       n.Size.Width,
			"height":      n.Size.Height,
			"tag":         string(n.Tag),
			"pinned":      n.Pinned,
			"created_at":  n.CreatedAt.UnixMilli(),
			"updated_at":  n.UpdatedAt.UnixMilli(),
		})
	}
	return out
}

func connectionParams(conns []domain.Connection) []interface{} {
	out := make([]interface{}, 0, len(conns))
	for _, c := range conns {
		out = append(out, map[string]interface{}{
			"id":             c.ID,
			"notebook_id":    c.NotebookID,
			"source_node_id": c.SourceNodeID,
			"target_node_id": c.TargetNodeID,
			"created_at":     c.CreatedAt.UnixMilli(),
		})
	}
	return out
}

func decodeStack(raw, notebookID string, into map[string][]domain.Action) error {
	if raw == "" || raw == "null" {
		return nil
	}
	var stack []domain.Action
	if err := json.Unmarshal([]byte(raw), &stack); err != nil {
		return fmt.Errorf("decode history of notebook %s: %w", notebookID, err)
	}
	if len(stack) > 0 {
		into[notebookID] = stack
	}
	return nil
}

func getString(record *neo4j.Record, key string) string {
	v, _ := record.Get(key)
	s, _ := v.(string)
	return s
}

func getFloat(record *neo4j.Record, key string) float64 {
	v, _ := record.Get(key)
	switch f := v.(type) {
	case float64:
		return f
	case int64:
		return float64(f)
	}
	return 0
}

func getBool(record *neo4j.Record, key string) bool {
	v, _ := record.Get(key)
	b, _ := v.(bool)
	return b
}

func getTime(record *neo4j.Record, key string) time.Time {
	v, _ := record.Get(key)
	ms, _ := v.(int64)
	return time.UnixMilli(ms).UTC()
}
