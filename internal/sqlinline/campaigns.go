package sqlinline

const QInsertCampaign = `--sql 409a5153-3e36-431c-86d2-c2e8ad20efdc
insert into campaigns (id, author_id, title, cause, description, target_amount, image_url, created_at)
values (gen_random_uuid(), $1::uuid, $2::text, $3::text, $4::text, $5::double precision, nullif($6::text, ''), now())
returning id, created_at;
`

const QListCampaigns = `--sql b889470c-c0c4-4bd8-94f4-1c0f0e6e3a6f
select id, author_id, title, cause, description, target_amount, coalesce(image_url, ''), created_at
from campaigns
order by created_at desc, id desc;
`

const QListCampaignsByAuthor = `--sql 5d6e10c4-5a36-4ac8-8124-2b31ff383275
select id, author_id, title, cause, description, target_amount, coalesce(image_url, ''), created_at
from campaigns
where author_id = $1::uuid
order by created_at desc, id desc;
`
