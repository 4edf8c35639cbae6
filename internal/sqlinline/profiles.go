package sqlinline

const QInsertProfile = `--sql 3350be48-5f19-4862-8fc7-013a7f4b3152
insert into profiles (id, full_name, email, phone, location, created_at)
values ($1::uuid, $2::text, $3::text, $4::text, $5::text, now())
returning created_at;
`

const QSelectProfileByID = `--sql aceb9e72-e2bf-4786-999d-9baf565143db
select id, full_name, email, phone, location, created_at
from profiles
where id = $1::uuid
limit 1;
`

const QDeleteProfile = `--sql d920a5ca-04a3-43a8-8246-6d8d55c63a11
delete from profiles
where id = $1::uuid;
`
