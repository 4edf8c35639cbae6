package sqlinline

const QInsertUserRole = `--sql 790e27ea-f475-4fa9-ae53-c3efb96896ff
insert into user_roles (user_id, role, created_at)
values ($1::uuid, $2::text, now())
returning created_at;
`

const QSelectUserRole = `--sql e4cafcb4-959e-4b8f-8d0d-415b2edcad05
select user_id, role, created_at
from user_roles
where user_id = $1::uuid
limit 1;
`

const QDeleteUserRole = `--sql d71662b5-93fd-44b6-838e-2be6dbb4f410
delete from user_roles
where user_id = $1::uuid;
`
