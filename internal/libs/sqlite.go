package libs

import (
	"database/sql"

	_ "modernc.org/sqlite"

	"github.com/funvibe/palang/pkg/ext"
)

var databases = newHandleTable[*sql.DB]("sqlite")

func init() {
	ext.Register("sqlite", sqliteModule)
}

func sqliteModule() ext.Value {
	return ext.Exports(map[string]ext.NativeFunction{
		"open":  sqliteOpen,
		"exec":  sqliteExec,
		"query": sqliteQuery,
		"close": sqliteClose,
	})
}

// open(path) opens or creates a database file and returns its handle.
func sqliteOpen(args *ext.List, kwargs *ext.Dictionary, this ext.Value) (ext.Value, error) {
	path, err := ext.StringArg(args, kwargs, 0, "path")
	if err != nil {
		return nil, err
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, ext.IOError(err, "sqlite.open(%q) failed.", path)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, ext.IOError(err, "sqlite.open(%q) failed.", path)
	}
	return ext.Int(databases.add(db)), nil
}

// sqlParams converts the params list into driver arguments. Only scalars
// bind.
func sqlParams(args *ext.List, kwargs *ext.Dictionary) ([]interface{}, error) {
	params, err := ext.ListArg(args, kwargs, 2, "params")
	if err != nil {
		return nil, err
	}
	out := make([]interface{}, len(params.Elements))
	for i, p := range params.Elements {
		switch p.(type) {
		case *ext.List, *ext.Dictionary:
			return nil, ext.ArgumentError("params[%d] cannot bind a %s.", i, p.Type())
		}
		x, err := toGo(p, "sqlite")
		if err != nil {
			return nil, err
		}
		out[i] = x
	}
	return out, nil
}

// exec(handle, sql, params=[]) runs a statement and returns the number of
// rows it affected.
func sqliteExec(args *ext.List, kwargs *ext.Dictionary, this ext.Value) (ext.Value, error) {
	_, db, err := handleArg(databases, args, kwargs)
	if err != nil {
		return nil, err
	}
	stmt, err := ext.StringArg(args, kwargs, 1, "sql")
	if err != nil {
		return nil, err
	}
	params, err := sqlParams(args, kwargs)
	if err != nil {
		return nil, err
	}

	res, err := db.Exec(stmt, params...)
	if err != nil {
		return nil, ext.IOError(err, "sqlite.exec failed.")
	}
	n, err := res.RowsAffected()
	if err != nil {
		return nil, ext.IOError(err, "sqlite.exec failed.")
	}
	return ext.Int(n), nil
}

// query(handle, sql, params=[]) returns one Dictionary per row, keyed by
// column name.
func sqliteQuery(args *ext.List, kwargs *ext.Dictionary, this ext.Value) (ext.Value, error) {
	_, db, err := handleArg(databases, args, kwargs)
	if err != nil {
		return nil, err
	}
	stmt, err := ext.StringArg(args, kwargs, 1, "sql")
	if err != nil {
		return nil, err
	}
	params, err := sqlParams(args, kwargs)
	if err != nil {
		return nil, err
	}

	rows, err := db.Query(stmt, params...)
	if err != nil {
		return nil, ext.IOError(err, "sqlite.query failed.")
	}
	defer rows.Close()

	cols, err := rows.Columns()
	if err != nil {
		return nil, ext.IOError(err, "sqlite.query failed.")
	}

	result := ext.NewList()
	for rows.Next() {
		dest := make([]interface{}, len(cols))
		ptrs := make([]interface{}, len(cols))
		for i := range dest {
			ptrs[i] = &dest[i]
		}
		if err := rows.Scan(ptrs...); err != nil {
			return nil, ext.IOError(err, "sqlite.query failed.")
		}
		row := ext.NewDictionary()
		for i, c := range cols {
			row.Set(c, fromGo(dest[i]))
		}
		result.Append(row)
	}
	if err := rows.Err(); err != nil {
		return nil, ext.IOError(err, "sqlite.query failed.")
	}
	return result, nil
}

func sqliteClose(args *ext.List, kwargs *ext.Dictionary, this ext.Value) (ext.Value, error) {
	id, _, err := handleArg(databases, args, kwargs)
	if err != nil {
		return nil, err
	}
	db, err := databases.remove(id)
	if err != nil {
		return nil, err
	}
	if err := db.Close(); err != nil {
		return nil, ext.IOError(err, "sqlite.close failed.")
	}
	return ext.NIL, nil
}
