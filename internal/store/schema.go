package store

const schemaSQL = `
CREATE TABLE IF NOT EXISTS transactions (
    id                   TEXT PRIMARY KEY,
    amount               INTEGER NOT NULL,
    type                 TEXT NOT NULL,
    category             TEXT NOT NULL,
    created_at           TEXT NOT NULL,
    note                 TEXT NOT NULL DEFAULT '',
    intent               TEXT NOT NULL DEFAULT ''
);

CREATE TABLE IF NOT EXISTS profile (
    id                    INTEGER PRIMARY KEY CHECK (id = 1),
    income                INTEGER NOT NULL DEFAULT 0,
    fixed_expenses        INTEGER NOT NULL DEFAULT 0,
    monthly_subscriptions INTEGER NOT NULL DEFAULT 0,
    savings_goal          INTEGER NOT NULL DEFAULT 0,
    updated_at            TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS budgets (
    category             TEXT PRIMARY KEY,
    cap                  INTEGER NOT NULL
);

CREATE TABLE IF NOT EXISTS recurring_rules (
    id                   TEXT PRIMARY KEY,
    title                TEXT NOT NULL,
    amount               INTEGER NOT NULL,
    category             TEXT NOT NULL,
    cadence              TEXT NOT NULL,
    next_run_date        TEXT NOT NULL,
    active               INTEGER NOT NULL DEFAULT 1,
    type                 TEXT NOT NULL,
    created_at           TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS notifications (
    id                   TEXT PRIMARY KEY,
    type                 TEXT NOT NULL,
    title                TEXT NOT NULL,
    message              TEXT NOT NULL,
    created_at           TEXT NOT NULL,
    read                 INTEGER NOT NULL DEFAULT 0
);

CREATE TABLE IF NOT EXISTS savings_goals (
    id                   TEXT PRIMARY KEY,
    name                 TEXT NOT NULL,
    target_amount        INTEGER NOT NULL,
    target_date          TEXT NOT NULL DEFAULT '',
    current_saved        INTEGER NOT NULL DEFAULT 0,
    contribution_type    TEXT NOT NULL,
    created_at           TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS goal_contributions (
    id                   TEXT PRIMARY KEY,
    goal_id              TEXT NOT NULL REFERENCES savings_goals(id),
    amount               INTEGER NOT NULL,
    created_at           TEXT NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_transactions_created ON transactions(created_at);
CREATE INDEX IF NOT EXISTS idx_notifications_created ON notifications(created_at);
CREATE INDEX IF NOT EXISTS idx_contributions_goal ON goal_contributions(goal_id, created_at);
`
