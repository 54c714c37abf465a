package commands

import (
	"fmt"
	"log"

	"ems/backend/internal/pkg/repository/postgresql"
)

type Scheme struct {
	Index       int
	Description string
	Query       string
}

var scheme = []Scheme{
	{
		Index:       1,
		Description: "CREATE TYPE \"user_role\" AS ENUM",
		Query: `
        CREATE TYPE "user_role" AS ENUM ('ADMIN', 'MANAGER', 'EMPLOYEE');`,
	},
	{
		Index:       2,
		Description: "Create table: users.",
		Query: `
        CREATE TABLE IF NOT EXISTS users (
            id serial primary key,
            username varchar(50) unique not null,
            password text not null,
            role user_role not null,
            created_at timestamp default now(),
            created_by int references users(id),
            updated_at timestamp,
            updated_by int references users(id),
            deleted_at timestamp,
            deleted_by int references users(id)
        );`,
	},
	{
		Index:       3,
		Description: "Seed user with username: admin, password: admin123",
		Query: `
        INSERT INTO users(username, role, password)
        SELECT 'admin', 'ADMIN', '$2a$10$NKtnMwDPFSQLG6uOi4Zqheru5Ygbj9TWFHjpl478rRSaO5cJ9QuH2'
        WHERE NOT EXISTS (SELECT username FROM users WHERE username = 'admin');
        `,
	},
	{
		Index:       4,
		Description: "Create table: employees.",
		Query: `
        CREATE TABLE IF NOT EXISTS employees (
            id serial primary key,
            user_id int references users(id),
            first_name varchar(50) not null,
            last_name varchar(50) not null,
            email varchar(100) unique not null,
            phone varchar(20),
            address text,
            position varchar(50) not null,
            department varchar(50) not null,
            joining_date date not null,
            base_salary numeric(10,2) not null,
            created_at timestamp default now(),
            created_by int references users(id),
            updated_at timestamp,
            updated_by int references users(id),
            deleted_at timestamp,
            deleted_by int references users(id)
        );`,
	},
	{
		Index:       5,
		Description: "Create table: attendance.",
		Query: `
        CREATE TABLE IF NOT EXISTS attendance (
            id serial primary key,
            employee_id int not null references employees(id),
            work_day date not null,
            check_in timestamptz,
            check_out timestamptz,
            status varchar(20) not null check (status in ('check-in', 'check-out', 'absent')),
            hours_worked numeric(5,2),
            created_at timestamp default now(),
            created_by int references users(id),
            updated_at timestamp,
            updated_by int references users(id),
            deleted_at timestamp,
            deleted_by int references users(id),
            CONSTRAINT unique_attendance UNIQUE (employee_id, work_day)
        );`,
	},
	{
		Index:       6,
		Description: "Create table: leaves.",
		Query: `
        CREATE TABLE IF NOT EXISTS leaves (
            id serial primary key,
            employee_id int not null references employees(id),
            start_date date not null,
            end_date date not null,
            reason text,
            status varchar(20) not null check (status in ('pending', 'approved', 'rejected')),
            approved_by int references users(id),
            approved_at timestamp,
            created_at timestamp default now(),
            created_by int references users(id),
            updated_at timestamp,
            updated_by int references users(id),
            deleted_at timestamp,
            deleted_by int references users(id),
            CONSTRAINT unique_leave UNIQUE (employee_id, start_date)
        );`,
	},
	{
		Index:       7,
		Description: "Create table: salaries.",
		Query: `
        CREATE TABLE IF NOT EXISTS salaries (
            id serial primary key,
            employee_id int not null references employees(id),
            month int not null check (month between 1 and 12),
            year int not null,
            base_amount numeric(10,2) not null,
            overtime_amount numeric(10,2) default 0,
            deductions numeric(10,2) default 0,
            total_amount numeric(10,2) not null,
            status varchar(20) not null check (status in ('pending', 'processed', 'paid')),
            payment_date date,
            created_at timestamp default now(),
            created_by int references users(id),
            updated_at timestamp,
            updated_by int references users(id),
            deleted_at timestamp,
            deleted_by int references users(id),
            CONSTRAINT unique_salary UNIQUE (employee_id, month, year)
        );`,
	},
	{
		Index:       8,
		Description: "Create table: notifications.",
		Query: `
        CREATE TABLE IF NOT EXISTS notifications (
            id serial primary key,
            user_id int not null references users(id),
            sender_id int references users(id),
            title varchar(200) not null,
            message text,
            type varchar(20) default 'alert',
            is_read boolean default false,
            created_at timestamp default now(),
            CONSTRAINT unique_notification UNIQUE (user_id, title)
        );`,
	},
}

// Migrate creates the scheme in the database.
func Migrate(db *postgresql.Database) {
	for _, s := range scheme {
		if _, err := db.Query(s.Query); err != nil {
			log.Fatalln("migrate error", err)
		}
	}
}

func MigrateUP(db *postgresql.Database) {
	var (
		version int
		dirty   bool
		er      *string
	)
	err := db.QueryRow("SELECT version, dirty, error FROM schema_migrations").Scan(&version, &dirty, &er)
	if err != nil {
		if err.Error() == `ERROR: relation "schema_migrations" does not exist (SQLSTATE=42P01)` {
			if _, err = db.Exec(`
				CREATE TABLE IF NOT EXISTS schema_migrations (version int not null, dirty bool not null, error text);
				DELETE FROM schema_migrations;
				INSERT INTO schema_migrations (version, dirty) values (0, false);
			`); err != nil {
				log.Fatalln("migrate schema_migrations create error", err)
			}
			version = 0
			dirty = false
		} else {
			log.Fatalln("migrate schema_migrations scan: ", err)
		}
	}

	if dirty {
		for _, v := range scheme {
			if v.Index == version {
				if _, err = db.Exec(v.Query); err != nil {
					if _, err = db.Exec(fmt.Sprintf(`UPDATE schema_migrations SET error = '%s'`, err.Error())); err != nil {
						log.Fatalln("migrate error", err)
					}
					log.Fatalln(fmt.Sprintf("migrate error version: %d", version), err)
				}
				if _, err = db.Exec(`UPDATE schema_migrations SET dirty = false, error = null`); err != nil {
					log.Fatalln("migrate error", err)
				}
			}
		}
	}

	for _, s := range scheme {
		if s.Index > version {
			if _, err = db.Exec(s.Query); err != nil {
				if _, err = db.Exec(fmt.Sprintf(`UPDATE schema_migrations SET error = '%s', version = %d, dirty = true`, err.Error(), s.Index)); err != nil {
					log.Fatalln("migrate error", err)
				}
				log.Fatalln(fmt.Sprintf("migrate error version: %d", s.Index), err)
			}
			if _, err = db.Exec(fmt.Sprintf(`UPDATE schema_migrations SET version = %d`, s.Index)); err != nil {
				log.Fatalln("migrate error", err)
			}
		}
	}
}
