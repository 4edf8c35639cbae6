package sqlinline

const QInsertDonation = `--sql 83129dcb-a5f5-41d0-bc8b-2ef8afa5e0a5
insert into donations (id, donor_id, donation_type, description, location, quantity, latitude, longitude, created_at)
values (gen_random_uuid(), $1::uuid, $2::text, $3::text, $4::text, nullif($5::text, ''), $6::double precision, $7::double precision, now())
returning id, created_at;
`

const QSelectDonationByID = `--sql 5f8c69d5-d387-4e0c-9e01-5a7b44e0a324
select id, donor_id, donation_type, description, location, coalesce(quantity, ''), latitude, longitude, created_at
from donations
where id = $1::uuid
limit 1;
`

// QListDonationsByLocation matches on byte equality; no case folding or trimming.
const QListDonationsByLocation = `--sql 0e27baec-8b76-405e-a9bb-345859eb575e
select id, donor_id, donation_type, description, location, coalesce(quantity, ''), latitude, longitude, created_at
from donations
where location = $1::text
order by created_at desc, id desc;
`

const QListDonationsByDonor = `--sql 8b769c55-0abc-4744-8144-48a23b55a5ba
select id, donor_id, donation_type, description, location, coalesce(quantity, ''), latitude, longitude, created_at
from donations
where donor_id = $1::uuid
order by created_at desc, id desc;
`
