package persistence

import (
	"fmt"
	"strings"

	"github.com/pingcap/tidb/pkg/parser"
	"github.com/pingcap/tidb/pkg/parser/ast"
	"github.com/pingcap/tidb/pkg/parser/test_driver" // ValueExpr implementation for literals

	"github.com/Andtit4/site-database-sub001/internal/domain/schema"
	"github.com/Andtit4/site-database-sub001/pkg/constants"
	appErrors "github.com/Andtit4/site-database-sub001/pkg/errors"
)

// DDLVerifier parses generated DDL back into an AST and checks it describes
// exactly the table that was requested before it is sent to the server.
type DDLVerifier struct {
	parser *parser.Parser
}

// NewDDLVerifier creates a new DDLVerifier
func NewDDLVerifier() *DDLVerifier {
	return &DDLVerifier{parser: parser.New()}
}

func (v *DDLVerifier) parseOne(sql string) (ast.StmtNode, error) {
	stmtNodes, _, err := v.parser.Parse(sql, "", "")
	if err != nil {
		return nil, fmt.Errorf("SQL parse error: %v", err)
	}
	if len(stmtNodes) != 1 {
		return nil, fmt.Errorf("expected a single statement, got %d", len(stmtNodes))
	}
	return stmtNodes[0], nil
}

// VerifyCreate checks that ddl is a single CREATE TABLE for def with the fixed
// columns followed by def.Columns in order, carrying the site foreign key.
func (v *DDLVerifier) VerifyCreate(ddl string, def schema.TableDefinition) error {
	stmt, err := v.parseOne(ddl)
	if err != nil {
		return appErrors.NewInternalError("generated DDL rejected", err)
	}

	create, ok := stmt.(*ast.CreateTableStmt)
	if !ok {
		return appErrors.NewInternalError("generated DDL rejected", fmt.Errorf("expected CREATE TABLE, got %T", stmt))
	}
	if got := create.Table.Name.O; got != def.TableName {
		return appErrors.NewInternalError("generated DDL rejected", fmt.Errorf("table name %q, expected %q", got, def.TableName))
	}

	expected := append(constants.FixedSpecColumns(), columnNames(def.Columns)...)
	if len(create.Cols) != len(expected) {
		return appErrors.NewInternalError("generated DDL rejected", fmt.Errorf("%d columns, expected %d", len(create.Cols), len(expected)))
	}
	for i, col := range create.Cols {
		if !strings.EqualFold(col.Name.Name.O, expected[i]) {
			return appErrors.NewInternalError("generated DDL rejected", fmt.Errorf("column %d is %q, expected %q", i, col.Name.Name.O, expected[i]))
		}
	}

	// Defaults must survive quoting unchanged
	offset := len(constants.FixedSpecColumns())
	for i, want := range def.Columns {
		if want.DefaultValue == nil {
			continue
		}
		got, found := defaultLiteral(create.Cols[offset+i])
		if !found || got != *want.DefaultValue {
			return appErrors.NewInternalError("generated DDL rejected", fmt.Errorf("default of column %q does not round-trip", want.Name))
		}
	}

	if !hasSiteForeignKey(create) {
		return appErrors.NewInternalError("generated DDL rejected", fmt.Errorf("missing foreign key to %s", constants.TableSite))
	}
	return nil
}

// VerifyDrop checks that ddl is a single DROP TABLE IF EXISTS of tableName
func (v *DDLVerifier) VerifyDrop(ddl string, tableName string) error {
	stmt, err := v.parseOne(ddl)
	if err != nil {
		return appErrors.NewInternalError("generated DDL rejected", err)
	}

	drop, ok := stmt.(*ast.DropTableStmt)
	if !ok || drop.IsView {
		return appErrors.NewInternalError("generated DDL rejected", fmt.Errorf("expected DROP TABLE, got %T", stmt))
	}
	if !drop.IfExists || len(drop.Tables) != 1 || drop.Tables[0].Name.O != tableName {
		return appErrors.NewInternalError("generated DDL rejected", fmt.Errorf("drop must target only %q with IF EXISTS", tableName))
	}
	return nil
}

func defaultLiteral(col *ast.ColumnDef) (string, bool) {
	for _, opt := range col.Options {
		if opt.Tp != ast.ColumnOptionDefaultValue {
			continue
		}
		if ve, ok := opt.Expr.(*test_driver.ValueExpr); ok {
			return ve.GetString(), true
		}
	}
	return "", false
}

func hasSiteForeignKey(create *ast.CreateTableStmt) bool {
	for _, c := range create.Constraints {
		if c.Tp != ast.ConstraintForeignKey || c.Refer == nil {
			continue
		}
		if c.Refer.Table.Name.O == constants.TableSite &&
			len(c.Keys) == 1 && c.Keys[0].Column.Name.O == constants.FieldSiteID {
			return true
		}
	}
	return false
}

func columnNames(cols []schema.ColumnDefinition) []string {
	names := make([]string, len(cols))
	for i, c := range cols {
		names[i] = c.Name
	}
	return names
}
