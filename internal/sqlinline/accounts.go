package sqlinline

const QInsertAccount = `--sql 1673f4ba-a5e1-46f3-9768-62b8c4890580
insert into accounts (id, email, password_hash, created_at)
values ($1::uuid, $2::text, $3::text, now())
returning created_at;
`

const QSelectAccountByEmail = `--sql d4dab0a3-b15d-419d-b283-03428a353259
select id, email, password_hash, created_at
from accounts
where email = $1::text
limit 1;
`

const QDeleteAccount = `--sql 0701135f-b9f5-46f0-a764-60169fab18ce
delete from accounts
where id = $1::uuid;
`
