package store

import "github.com/nhle/task-planner/internal/model"

// tasksDDL holds the CREATE TABLE statement for each dialect. All three
// produce tasks(id auto-increment primary key, name, description,
// category, deadline DATE).
var tasksDDL = map[string]string{
	model.DriverSQLite: `
CREATE TABLE IF NOT EXISTS tasks (
	id          INTEGER PRIMARY KEY AUTOINCREMENT,
	name        TEXT,
	description TEXT,
	category    TEXT,
	deadline    DATE
)`,
	model.DriverMySQL: `
CREATE TABLE IF NOT EXISTS tasks (
	id          INT PRIMARY KEY AUTO_INCREMENT,
	name        TEXT,
	description TEXT,
	category    TEXT,
	deadline    DATE
)`,
	model.DriverPostgres: `
CREATE TABLE IF NOT EXISTS tasks (
	id          SERIAL PRIMARY KEY,
	name        TEXT,
	description TEXT,
	category    TEXT,
	deadline    DATE
)`,
}

const (
	listQuery   = "SELECT id, name, description, category, deadline FROM tasks"
	insertQuery = "INSERT INTO tasks (name, description, category, deadline) VALUES (?, ?, ?, ?)"
	updateQuery = "UPDATE tasks SET name = ?, description = ?, category = ?, deadline = ? WHERE id = ?"
	deleteQuery = "DELETE FROM tasks WHERE id = ?"
)
