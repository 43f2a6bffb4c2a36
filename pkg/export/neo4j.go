package export

import (
	"context"
	"fmt"
	"strings"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"

	"github.com/rominabarouti/FacilityGraph/pkg/topology"
)

// DefaultBatchSize is the number of rows sent per UNWIND statement.
const DefaultBatchSize = 500

// baseLabel is carried by every node written, so edges can be matched
// without knowing the endpoint kind.
const baseLabel = "FacilityNode"

// Statement is one parameterised Cypher statement.
type Statement struct {
	Cypher string
	Params map[string]any
}

// statementWriter runs statements in a single write transaction.
type statementWriter interface {
	Write(ctx context.Context, stmts []Statement) error
	Close(ctx context.Context) error
}

// Neo4jConfig holds connection settings.
type Neo4jConfig struct {
	URI       string
	User      string
	Password  string
	Database  string
	BatchSize int
}

// Neo4jExporter merges a snapshot into a Neo4j database. Nodes are keyed by
// GlobalId, so re-exporting the same model updates rather than duplicates.
type Neo4jExporter struct {
	writer    statementWriter
	batchSize int
}

// driverWriter adapts a neo4j driver to statementWriter.
type driverWriter struct {
	driver   neo4j.DriverWithContext
	database string
}

func (d *driverWriter) Write(ctx context.Context, stmts []Statement) error {
	sess := d.driver.NewSession(ctx, neo4j.SessionConfig{
		AccessMode:   neo4j.AccessModeWrite,
		DatabaseName: d.database,
	})
	defer sess.Close(ctx)

	_, err := sess.ExecuteWrite(ctx, func(tx neo4j.ManagedTransaction) (any, error) {
		for _, st := range stmts {
			if _, err := tx.Run(ctx, st.Cypher, st.Params); err != nil {
				return nil, err
			}
		}
		return nil, nil
	})
	return err
}

func (d *driverWriter) Close(ctx context.Context) error {
	return d.driver.Close(ctx)
}

// NewNeo4jExporter connects to Neo4j and verifies connectivity.
func NewNeo4jExporter(ctx context.Context, cfg Neo4jConfig) (*Neo4jExporter, error) {
	driver, err := neo4j.NewDriverWithContext(cfg.URI, neo4j.BasicAuth(cfg.User, cfg.Password, ""))
	if err != nil {
		return nil, fmt.Errorf("neo4j connect: %w", err)
	}
	if err := driver.VerifyConnectivity(ctx); err != nil {
		driver.Close(ctx)
		return nil, fmt.Errorf("neo4j verify: %w", err)
	}
	return newNeo4jExporter(&driverWriter{driver: driver, database: cfg.Database}, cfg.BatchSize), nil
}

func newNeo4jExporter(w statementWriter, batchSize int) *Neo4jExporter {
	if batchSize <= 0 {
		batchSize = DefaultBatchSize
	}
	return &Neo4jExporter{writer: w, batchSize: batchSize}
}

// Export writes the snapshot in one transaction and returns the number of
// statements executed.
func (e *Neo4jExporter) Export(ctx context.Context, snap topology.Snapshot) (int, error) {
	stmts := Neo4jStatements(snap, e.batchSize)
	if err := e.writer.Write(ctx, stmts); err != nil {
		return 0, fmt.Errorf("neo4j write: %w", err)
	}
	return len(stmts), nil
}

// Close releases the underlying driver.
func (e *Neo4jExporter) Close(ctx context.Context) error {
	return e.writer.Close(ctx)
}

// Neo4jStatements renders MERGE statements for a snapshot: one UNWIND batch
// per node label, then per relationship type. Structural nodes CONTAIN
// spaces; adjacency is stored as ADJACENT_TO from the lexically smaller
// endpoint, with its vias as a list.
func Neo4jStatements(snap topology.Snapshot, batchSize int) []Statement {
	if batchSize <= 0 {
		batchSize = DefaultBatchSize
	}
	var stmts []Statement

	byLabel := make(map[string][]any)
	var labels []string
	for _, n := range snap.Nodes {
		label := nodeLabel(n.IFCType)
		if _, ok := byLabel[label]; !ok {
			labels = append(labels, label)
		}
		byLabel[label] = append(byLabel[label], map[string]any{
			"id":    n.ID,
			"props": nodeProps(n),
		})
	}
	for _, label := range labels {
		cypher := fmt.Sprintf(
			"UNWIND $rows AS row MERGE (n:%s {id: row.id}) SET n:%s, n += row.props",
			baseLabel, label,
		)
		stmts = appendBatches(stmts, cypher, byLabel[label], batchSize)
	}

	spaces := make(map[string]bool, len(snap.Nodes))
	for _, n := range snap.Nodes {
		spaces[n.ID] = n.IFCType == "IfcSpace"
	}

	byType := make(map[string][]any)
	var relTypes []string
	for _, e := range snap.Edges {
		rel := relType(e.Type)
		if _, ok := byType[rel]; !ok {
			relTypes = append(relTypes, rel)
		}
		source, target := e.Source, e.Target
		// containment points from the structural parent to the space
		if e.Type == string(topology.EdgeContains) && spaces[source] && !spaces[target] {
			source, target = target, source
		}
		byType[rel] = append(byType[rel], map[string]any{
			"source": source,
			"target": target,
			"vias":   splitVias(e.Vias),
		})
	}
	for _, rel := range relTypes {
		cypher := fmt.Sprintf(
			"UNWIND $rows AS row MATCH (a:%[1]s {id: row.source}), (b:%[1]s {id: row.target}) "+
				"MERGE (a)-[r:%[2]s]->(b) SET r.vias = row.vias",
			baseLabel, rel,
		)
		stmts = appendBatches(stmts, cypher, byType[rel], batchSize)
	}
	return stmts
}

func appendBatches(stmts []Statement, cypher string, rows []any, size int) []Statement {
	for start := 0; start < len(rows); start += size {
		end := start + size
		if end > len(rows) {
			end = len(rows)
		}
		stmts = append(stmts, Statement{Cypher: cypher, Params: map[string]any{"rows": rows[start:end]}})
	}
	return stmts
}

func nodeProps(n topology.NodeRecord) map[string]any {
	props := make(map[string]any, 7)
	for _, kv := range n.Attributes() {
		props[kv[0]] = kv[1]
	}
	return props
}

// nodeLabel maps an IFC type to a label: IfcBuildingStorey -> BuildingStorey.
func nodeLabel(ifcType string) string {
	label := sanitizeIdentifier(strings.TrimPrefix(ifcType, "Ifc"))
	if label == "" {
		return "Unknown"
	}
	return label
}

// relType maps an edge type to a relationship type: adjacent -> ADJACENT_TO.
func relType(edgeType string) string {
	switch edgeType {
	case string(topology.EdgeContains):
		return "CONTAINS"
	case string(topology.EdgeAdjacent):
		return "ADJACENT_TO"
	default:
		if s := sanitizeIdentifier(strings.ToUpper(edgeType)); s != "" {
			return s
		}
		return "RELATED_TO"
	}
}

// sanitizeIdentifier keeps only characters valid in an unquoted Cypher
// label or relationship type.
func sanitizeIdentifier(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r == '_' || (r >= 'A' && r <= 'Z') || (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
		}
	}
	return b.String()
}

func splitVias(vias string) []any {
	if vias == "" {
		return []any{}
	}
	parts := strings.Split(vias, topology.ViaSeparator)
	out := make([]any, len(parts))
	for i, p := range parts {
		out[i] = p
	}
	return out
}
