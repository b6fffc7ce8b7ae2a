// Command quillsql is a SQL shell over the engine core: one statement
// per `query` invocation, or `;`-terminated statements read from stdin
// by `shell`, backed by either an in-memory store or a file-backed
// SQLite-keyed store.
package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/alecthomas/kong"
	"github.com/dustin/go-humanize"

	"github.com/gluesql/gluesql-sub000/core/execute"
	"github.com/gluesql/gluesql-sub000/core/translate"
	"github.com/gluesql/gluesql-sub000/core/value"
	"github.com/gluesql/gluesql-sub000/sqltext"
	"github.com/gluesql/gluesql-sub000/storage"
	"github.com/gluesql/gluesql-sub000/storage/kvsqlite"
	"github.com/gluesql/gluesql-sub000/storage/memory"
)

var version = "dev"

type CLI struct {
	Query  QueryCmd   `cmd:"" help:"Run one SQL statement against a store"`
	Shell  ShellCmd   `cmd:"" help:"Read SQL statements interactively from stdin"`
	Schema SchemaCmd  `cmd:"" help:"Print a table's schema (SHOW COLUMNS)"`
	Version VersionCmd `cmd:"" help:"Print version information"`
}

// storeFlags is embedded by every command that touches a store, so the
// DB flag is threaded consistently through every command group.
type storeFlags struct {
	DB string `help:"Path to a kvsqlite database file; omitted means an in-memory store" type:"path"`
}

func (f storeFlags) open() (storage.Store, func() error, error) {
	if f.DB == "" {
		return memory.New(), func() error { return nil }, nil
	}
	st, err := kvsqlite.Open(f.DB)
	if err != nil {
		return nil, nil, fmt.Errorf("quillsql: opening %s: %w", f.DB, err)
	}
	return st, st.Close, nil
}

type QueryCmd struct {
	storeFlags
	SQL string `arg:"" help:"SQL statement text"`
}

func (c *QueryCmd) Run() error {
	store, closeFn, err := c.open()
	if err != nil {
		return err
	}
	defer closeFn()
	return runStatement(store, c.SQL)
}

type ShellCmd struct {
	storeFlags
}

func (c *ShellCmd) Run() error {
	store, closeFn, err := c.open()
	if err != nil {
		return err
	}
	defer closeFn()

	scanner := bufio.NewScanner(os.Stdin)
	var buf strings.Builder
	for scanner.Scan() {
		line := scanner.Text()
		buf.WriteString(line)
		buf.WriteByte('\n')
		if !strings.Contains(line, ";") {
			continue
		}
		stmt := strings.TrimSpace(buf.String())
		buf.Reset()
		if stmt == "" {
			continue
		}
		if err := runStatement(store, stmt); err != nil {
			fmt.Fprintln(os.Stderr, "error:", err)
		}
	}
	if err := scanner.Err(); err != nil && err != io.EOF {
		return err
	}
	return nil
}

type SchemaCmd struct {
	storeFlags
	Table string `arg:"" help:"Table name"`
}

func (c *SchemaCmd) Run() error {
	store, closeFn, err := c.open()
	if err != nil {
		return err
	}
	defer closeFn()
	return runStatement(store, fmt.Sprintf("SHOW COLUMNS FROM %s", c.Table))
}

type VersionCmd struct{}

func (c *VersionCmd) Run() error {
	fmt.Printf("quillsql version %s\n", version)
	return nil
}

func runStatement(store storage.Store, sql string) error {
	pstmt, err := sqltext.Parse(sql)
	if err != nil {
		return err
	}
	stmt, err := translate.Translate(pstmt, nil)
	if err != nil {
		return err
	}
	payload, err := execute.Execute(context.Background(), store, stmt, nil)
	if err != nil {
		return err
	}
	printPayload(payload)
	return nil
}

func printPayload(p execute.Payload) {
	switch p.Kind {
	case execute.PayloadSelect:
		printRows(p.Labels, p.Rows)
	case execute.PayloadSelectMap:
		fmt.Printf("%s rows\n", humanize.Comma(int64(len(p.MapRows))))
	case execute.PayloadShowColumns:
		w := tabwriter.NewWriter(os.Stdout, 0, 2, 2, ' ', 0)
		fmt.Fprintln(w, "COLUMN\tTYPE")
		for _, c := range p.ColumnInfo {
			fmt.Fprintf(w, "%s\t%s\n", c.Name, c.DataType)
		}
		w.Flush()
	case execute.PayloadShowVariable:
		fmt.Println(p.Variable.String())
	case execute.PayloadInsert:
		fmt.Printf("INSERT %s\n", humanize.Comma(int64(p.RowCount)))
	case execute.PayloadUpdate:
		fmt.Printf("UPDATE %s\n", humanize.Comma(int64(p.RowCount)))
	case execute.PayloadDelete:
		fmt.Printf("DELETE %s\n", humanize.Comma(int64(p.RowCount)))
	default:
		fmt.Println("OK")
	}
}

func printRows(labels []string, rows [][]value.Value) {
	w := tabwriter.NewWriter(os.Stdout, 0, 2, 2, ' ', 0)
	fmt.Fprintln(w, strings.Join(labels, "\t"))
	for _, row := range rows {
		cells := make([]string, len(row))
		for i, v := range row {
			cells[i] = v.String()
		}
		fmt.Fprintln(w, strings.Join(cells, "\t"))
	}
	w.Flush()
	fmt.Printf("(%s rows)\n", humanize.Comma(int64(len(rows))))
}

func main() {
	var cli CLI
	ctx := kong.Parse(&cli,
		kong.Name("quillsql"),
		kong.Description("A minimal SQL engine shell"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact: true,
		}),
	)
	err := ctx.Run()
	ctx.FatalIfErrorf(err)
}
