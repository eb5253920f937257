// Package pgstore keeps questions in a Postgres table.
package pgstore

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"

	"github.com/jrsteele09/go-quiz-server/questions"
)

var _ questions.Store = (*Store)(nil)

const schema = `
create table if not exists questions (
	id                   text primary key,
	text                 text not null,
	options              text not null,
	correct_answer_index integer not null check (correct_answer_index between 0 and 3),
	created_at           timestamptz not null default now()
)`

type Store struct {
	db *sql.DB
}

func Open(dsn string) (*Store, error) {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, fmt.Errorf("[pgstore Open] %w", err)
	}
	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(15 * time.Minute)
	db.SetConnMaxIdleTime(5 * time.Minute)
	return New(db), nil
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

func (s *Store) Close() error { return s.db.Close() }

// Migrate creates the questions table when it is missing.
func (s *Store) Migrate(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("[pgstore Migrate] %w", err)
	}
	return nil
}

func (s *Store) List(ctx context.Context) ([]questions.Question, error) {
	rows, err := s.db.QueryContext(ctx, `select id, text, options, correct_answer_index from questions order by created_at, id`)
	if err != nil {
		return nil, questions.Upstream(err)
	}
	defer rows.Close()

	list := []questions.Question{}
	for rows.Next() {
		var (
			q    questions.Question
			opts string
		)
		if err := rows.Scan(&q.ID, &q.Text, &opts, &q.CorrectAnswerIndex); err != nil {
			return nil, questions.Upstream(err)
		}
		if err := json.Unmarshal([]byte(opts), &q.Options); err != nil {
			return nil, questions.Upstream(fmt.Errorf("decode options of %s: %w", q.ID, err))
		}
		list = append(list, q)
	}
	if err := rows.Err(); err != nil {
		return nil, questions.Upstream(err)
	}
	return list, nil
}

func (s *Store) Create(ctx context.Context, in questions.Input) (questions.Question, error) {
	if err := questions.ValidateInput(in); err != nil {
		return questions.Question{}, err
	}
	q := in.Normalize(questions.NewID())
	opts, err := json.Marshal(q.Options)
	if err != nil {
		return questions.Question{}, questions.Upstream(err)
	}
	if _, err := s.db.ExecContext(ctx,
		`insert into questions(id, text, options, correct_answer_index) values($1, $2, $3, $4)`,
		q.ID, q.Text, string(opts), q.CorrectAnswerIndex); err != nil {
		return questions.Question{}, questions.Upstream(err)
	}
	return q, nil
}

func (s *Store) Update(ctx context.Context, id string, in questions.Input) (questions.Question, error) {
	if err := questions.ValidateInput(in); err != nil {
		return questions.Question{}, err
	}
	q := in.Normalize(id)
	opts, err := json.Marshal(q.Options)
	if err != nil {
		return questions.Question{}, questions.Upstream(err)
	}
	res, err := s.db.ExecContext(ctx,
		`update questions set text = $2, options = $3, correct_answer_index = $4 where id = $1`,
		id, q.Text, string(opts), q.CorrectAnswerIndex)
	if err != nil {
		return questions.Question{}, questions.Upstream(err)
	}
	if err := affectedOne(res); err != nil {
		return questions.Question{}, err
	}
	return q, nil
}

func (s *Store) Delete(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `delete from questions where id = $1`, id)
	if err != nil {
		return questions.Upstream(err)
	}
	return affectedOne(res)
}

func affectedOne(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return questions.Upstream(err)
	}
	if n == 0 {
		return questions.ErrNotFound
	}
	return nil
}
