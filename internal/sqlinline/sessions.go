package sqlinline

const QRevokeSession = `--sql e93d28b0-d5ec-4ac8-865b-7697a41d070b
insert into revoked_sessions (token_id, expires_at, revoked_at)
values ($1::text, $2::timestamptz, now())
on conflict (token_id) do nothing;
`

const QSelectSessionRevoked = `--sql 89be0238-cbc6-4bc6-8ac1-ef21f5af13ec
select exists(select 1 from revoked_sessions where token_id = $1::text);
`

const QPurgeRevokedSessions = `--sql cb9679af-6bac-401d-868d-ff5a6cb26262
delete from revoked_sessions
where expires_at < $1::timestamptz;
`
