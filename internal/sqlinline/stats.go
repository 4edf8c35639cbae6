package sqlinline

const QStatsSummary = `--sql 907847e1-fb31-4b97-b04b-6550f9b78671
select
    (select count(*) from user_roles where role = 'donor') as donors,
    (select count(*) from user_roles where role = 'ngo') as ngos,
    (select count(*) from donations) as donations,
    (select count(*) from campaigns) as campaigns;
`
