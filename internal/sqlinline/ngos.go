package sqlinline

// QUpsertNGO reports inserted=true when the row did not exist before.
const QUpsertNGO = `--sql 9475320b-cdd0-4a92-87ab-6044aaa0d5b4
insert into ngos (user_id, name, registration_id, logo_url, description, location, created_at, updated_at)
values ($1::uuid, $2::text, $3::text, nullif($4::text, ''), $5::text, $6::text, now(), now())
on conflict (user_id) do update set
    name = excluded.name,
    registration_id = excluded.registration_id,
    logo_url = excluded.logo_url,
    description = excluded.description,
    location = excluded.location,
    updated_at = now()
returning created_at, updated_at, (xmax = 0) as inserted;
`

const QSelectNGOByUser = `--sql 09aee4d3-f214-4f4f-993c-4cfc4048a4d7
select user_id, name, registration_id, coalesce(logo_url, ''), description, location, created_at, updated_at
from ngos
where user_id = $1::uuid
limit 1;
`

const QListNGOsByLocation = `--sql fa3c3226-9042-4f19-b1fe-ace427153b49
select user_id, name, registration_id, coalesce(logo_url, ''), description, location, created_at, updated_at
from ngos
where location = $1::text
order by created_at asc;
`
